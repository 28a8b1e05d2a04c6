// Package staging keeps uploaded files between form submissions.
//
// A staging directory holds one entry per handle:
//
//	<dir>/<name>        raw uploaded bytes
//	<dir>/<name>.json   {"originalName":…,"mimeType":…,"size":…}
//
// Store.Stage writes an entry, Store.Reconstruct turns an entry back into a
// File that is indistinguishable from the upload it was made from. All
// access goes through a go-billy filesystem, so callers can stage on disk
// (osfs) or in memory (memfs).
package staging
