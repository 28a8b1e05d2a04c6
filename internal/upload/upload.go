package upload

import (
	"fmt"

	"github.com/dmitrijs2005/reform/internal/form"
	"github.com/dmitrijs2005/reform/internal/staging"
)

// Child names of an upload field.
const (
	FieldName = "name"
	FieldFile = "file"
)

// Record is the bound value of an upload field as seen by Commit. Custom
// data_class values must implement it.
type Record interface {
	UploadName() string
	UploadFile() *staging.File
}

// Upload is the default bound value: a handle and the file it refers to.
// After a successful submission either both are set or the field bound nil.
type Upload struct {
	Name string
	File *staging.File
}

func (u *Upload) UploadName() string {
	return u.Name
}

func (u *Upload) UploadFile() *staging.File {
	return u.File
}

// Field implements form.FieldGetter.
func (u *Upload) Field(name string) any {
	switch name {
	case FieldName:
		return u.Name
	case FieldFile:
		if u.File == nil {
			return nil
		}
		return u.File
	}
	return nil
}

// SetField implements form.FieldSetter.
func (u *Upload) SetField(name string, v any) error {
	switch name {
	case FieldName:
		s, ok := v.(string)
		if v != nil && !ok {
			return fmt.Errorf("%w: name is %T", form.ErrUnmappable, v)
		}
		u.Name = s
	case FieldFile:
		f, ok := v.(*staging.File)
		if v != nil && !ok {
			return fmt.Errorf("%w: file is %T", form.ErrUnmappable, v)
		}
		u.File = f
	default:
		return fmt.Errorf("%w: upload has no field %q", form.ErrUnmappable, name)
	}
	return nil
}
