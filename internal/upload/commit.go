package upload

import (
	"context"

	"github.com/dmitrijs2005/reform/internal/form"
)

type registryKey struct {
	t *Type
}

// register remembers f on its root form for Commit.
func (t *Type) register(f *form.Form) {
	root := f.Root()
	key := registryKey{t}
	fields, _ := root.Attr(key).([]*form.Form)
	root.SetAttr(key, append(fields, f))
}

// Registered returns the upload fields of root that took a file during the
// last submission, in submission order.
func (t *Type) Registered(root *form.Form) []*form.Form {
	fields, _ := root.Root().Attr(registryKey{t}).([]*form.Form)
	return fields
}

// Commit stages the files of every registered upload field that is valid and
// carries both a handle and a file. Call it once the root form has been
// submitted and validated, whether or not the root form is valid. Failures
// are logged and do not stop the remaining fields.
func (t *Type) Commit(ctx context.Context, root *form.Form) {
	for _, f := range t.Registered(root) {
		if !f.IsValid() {
			continue
		}
		rec, ok := f.Data().(Record)
		if !ok {
			continue
		}
		name, file := rec.UploadName(), rec.UploadFile()
		if name == "" || file == nil {
			continue
		}

		s := t.store(f)
		log := t.logger.With("field", f.FullName(), "handle", name, "tmp_dir", s.Dir())

		if err := s.Stage(file, name); err != nil {
			log.Error(ctx, "staging upload failed", "error", err)
			continue
		}
		log.Debug(ctx, "upload staged", "original_name", file.ClientOriginalName())
	}
}
