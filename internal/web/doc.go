// Package web serves a profile form over HTTP whose file fields survive a
// failed validation.
//
// A POST is parsed as multipart, its input names ("profile[avatar][file]")
// are folded into a nested payload and every file part is spooled next to
// the staging directory. After the form is submitted the upload fields are
// committed; spooled files that were not staged are removed before the
// response is written. An invalid form is rendered again with each accepted
// upload reduced to its hidden handle.
package web
