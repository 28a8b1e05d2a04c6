package web

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/reform/internal/form"
	"github.com/dmitrijs2005/reform/internal/upload"
)

//go:generate templ generate

// fieldView is one input of the profile form. Upload fields set FileName;
// their Name and Value belong to the hidden handle input.
type fieldView struct {
	Label    string
	Name     string
	Value    string
	FileName string
	Current  string
	Errors   []string
}

func (f fieldView) IsUpload() bool {
	return f.FileName != ""
}

type formView struct {
	Errors []string
	Fields []fieldView
}

type savedUploadView struct {
	Label   string
	Summary string
	Handle  string
}

type savedView struct {
	Title   string
	Uploads []savedUploadView
}

// newFormView flattens a built or submitted profile form for rendering.
func newFormView(root *form.Form) formView {
	v := formView{Errors: messages(root.Errors())}
	for _, c := range root.Children() {
		if _, ok := c.Type().(*upload.Type); ok {
			v.Fields = append(v.Fields, newUploadView(c))
			continue
		}
		value, _ := c.Data().(string)
		v.Fields = append(v.Fields, fieldView{
			Label:  label(c),
			Name:   c.FullName(),
			Value:  value,
			Errors: messages(c.Errors()),
		})
	}
	return v
}

func newUploadView(f *form.Form) fieldView {
	fileField := f.Get(upload.FieldFile)
	v := fieldView{
		Label:    label(f),
		Name:     f.Get(upload.FieldName).FullName(),
		FileName: fileField.FullName(),
		Errors:   messages(slices.Concat(f.Errors(), fileField.Errors())),
	}

	// only a field that will be staged gets its handle back
	if !f.IsValid() {
		return v
	}
	if rec, ok := f.Data().(upload.Record); ok && rec.UploadFile() != nil {
		v.Value = rec.UploadName()
		v.Current = rec.UploadFile().ClientOriginalName()
	}
	return v
}

func newSavedView(p *Profile) savedView {
	return savedView{
		Title: p.Title,
		Uploads: []savedUploadView{
			newSavedUploadView("Avatar", p.Avatar),
			newSavedUploadView("Attachment", p.Attachment),
		},
	}
}

func newSavedUploadView(title string, u *upload.Upload) savedUploadView {
	v := savedUploadView{Label: title}
	if u == nil || u.File == nil {
		return v
	}
	v.Handle = u.Name
	v.Summary = fmt.Sprintf("%s (%s)", u.File.ClientOriginalName(), u.File.ClientMimeType())
	return v
}

func label(f *form.Form) string {
	if s := f.Options().String(form.OptLabel); s != "" {
		return s
	}
	return f.Name()
}

func messages(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, message(err))
	}
	return out
}

func message(err error) string {
	switch {
	case errors.Is(err, form.ErrNotBlank):
		return "This value should not be blank."
	case errors.Is(err, upload.ErrFileTooLarge):
		return "The file is too large."
	case errors.Is(err, upload.ErrMimeType):
		return "The file type is not allowed."
	case errors.Is(err, form.ErrInvalidValue):
		return "This value is not valid."
	}
	return err.Error()
}
