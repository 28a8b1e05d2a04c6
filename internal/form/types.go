package form

import (
	"fmt"
	"io"
)

// Type describes how a form is configured and built.
type Type interface {
	// ConfigureOptions adds the type's own options and defaults to o.
	ConfigureOptions(o Options)
	// BuildForm adds children and event listeners.
	BuildForm(b *Builder, o Options)
}

// ReverseTransformer is implemented by leaf types that convert the raw
// submitted value into bound data.
type ReverseTransformer interface {
	ReverseTransform(submitted any) (any, error)
}

// FieldSetter receives the data of child forms on a compound form's value.
type FieldSetter interface {
	SetField(name string, value any) error
}

// FieldGetter exposes the fields of a compound form's value to its children.
type FieldGetter interface {
	Field(name string) any
}

// File is what FileType accepts as a submitted value.
type File interface {
	ClientOriginalName() string
	Open() (io.ReadCloser, error)
}

// FormType is the generic compound type.
type FormType struct{}

func (FormType) ConfigureOptions(o Options) {
	o[OptCompound] = true
}

func (FormType) BuildForm(*Builder, Options) {}

// TextType binds a single string.
type TextType struct{}

func (TextType) ConfigureOptions(o Options) {
	o[OptEmptyData] = ""
}

func (TextType) BuildForm(*Builder, Options) {}

func (TextType) ReverseTransform(submitted any) (any, error) {
	switch v := submitted.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []string:
		if len(v) == 0 {
			return "", nil
		}
		return v[0], nil
	default:
		return nil, fmt.Errorf("%w: expected string, got %T", ErrInvalidValue, submitted)
	}
}

// HiddenType is a TextType rendered as a hidden input.
type HiddenType struct {
	TextType
}

// FileType binds a File submitted with the request.
type FileType struct{}

func (FileType) ConfigureOptions(Options) {}

func (FileType) BuildForm(*Builder, Options) {}

func (FileType) ReverseTransform(submitted any) (any, error) {
	switch v := submitted.(type) {
	case nil:
		return nil, nil
	case string:
		// browsers post an empty string for an untouched file input
		if v == "" {
			return nil, nil
		}
	case File:
		return v, nil
	}
	return nil, fmt.Errorf("%w: expected file, got %T", ErrInvalidValue, submitted)
}
