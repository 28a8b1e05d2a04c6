package web

import (
	"github.com/dmitrijs2005/reform/internal/form"
	"github.com/dmitrijs2005/reform/internal/upload"
)

// RootName is the name of the profile form and the prefix of its inputs.
const RootName = "profile"

// Profile is the bound value of the profile form.
type Profile struct {
	Title      string
	Avatar     *upload.Upload
	Attachment *upload.Upload
}

func (p *Profile) Field(name string) any {
	switch name {
	case "title":
		return p.Title
	case "avatar":
		if p.Avatar != nil {
			return p.Avatar
		}
	case "attachment":
		if p.Attachment != nil {
			return p.Attachment
		}
	}
	return nil
}

func (p *Profile) SetField(name string, v any) error {
	switch name {
	case "title":
		p.Title, _ = v.(string)
	case "avatar":
		p.Avatar, _ = v.(*upload.Upload)
	case "attachment":
		p.Attachment, _ = v.(*upload.Upload)
	default:
		return form.ErrUnmappable
	}
	return nil
}

// NewProfileForm builds a fresh profile form: a required title, a required
// image avatar and an optional attachment, both files limited to maxFileSize.
func NewProfileForm(uploads *upload.Type, maxFileSize int64) (*form.Form, error) {
	b := form.NewBuilder(RootName, form.FormType{}, form.Options{
		form.OptDataClass: func() any { return &Profile{} },
	})

	b.Add("title", form.TextType{}, form.Options{
		form.OptLabel:       "Title",
		form.OptConstraints: []form.Constraint{form.NotBlank()},
	}).Add("avatar", uploads, form.Options{
		form.OptLabel:       "Avatar",
		form.OptConstraints: []form.Constraint{form.NotBlank()},
		upload.OptFileOptions: form.Options{
			form.OptConstraints: []form.Constraint{
				upload.MaxSize(maxFileSize),
				upload.MimeTypes("image/*"),
			},
		},
	}).Add("attachment", uploads, form.Options{
		form.OptLabel: "Attachment",
		upload.OptFileOptions: form.Options{
			form.OptConstraints: []form.Constraint{upload.MaxSize(maxFileSize)},
		},
	})

	return b.Form()
}
