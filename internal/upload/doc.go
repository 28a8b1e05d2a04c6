// Package upload provides a form field that keeps an uploaded file across
// re-submissions of its form.
//
// # Overview
//
// Browsers do not resend file bytes when a form is rendered again after a
// validation failure. The upload field has two children, a hidden handle
// ("name") and a file input ("file"). On submission it takes one of three
// branches:
//
//   - a fresh file arrives: a handle is assigned if none was sent and the
//     field is registered for Commit;
//   - only a handle arrives: the file is rebuilt from the staging directory
//     and the field is registered, or the field binds nil when nothing is
//     staged under that handle;
//   - nothing arrives: the field binds nil.
//
// After the root form has been submitted and validated the host calls
// Type.Commit, which stages every valid registered field: the metadata
// sidecar is written and the bytes are moved under the handle. Rendering
// only the hidden handle on the next page is enough to carry the upload
// into the next submission.
//
// # Typical Usage
//
//	uploads := upload.NewType("/var/lib/app/uploads-tmp")
//	b := form.NewBuilder("profile", form.FormType{}, nil)
//	b.Add("avatar", uploads, nil)
//	root, _ := b.Form()
//	_ = root.SubmitContext(ctx, payload)
//	uploads.Commit(ctx, root)
//	if root.IsValid() {
//		// use root.Data()
//	}
package upload
