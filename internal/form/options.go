package form

import "fmt"

// Base option keys understood by every type.
const (
	OptCompound    = "compound"
	OptLabel       = "label"
	OptEmptyData   = "empty_data"
	OptDataClass   = "data_class"
	OptConstraints = "constraints"
)

// Options holds the configuration of a form. After resolution every key the
// type declared is present, possibly with a nil value.
type Options map[string]any

// String returns the option as a string, or "" when unset or not a string.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Bool returns the option as a bool, or false when unset or not a bool.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Clone returns a shallow copy of o. A nil receiver yields an empty map.
func (o Options) Clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// OptionsValidator is implemented by types that restrict the values of their
// own options. It is called after defaults and user options are merged.
type OptionsValidator interface {
	ValidateOptions(o Options) error
}

func baseOptions() Options {
	return Options{
		OptCompound:    false,
		OptLabel:       nil,
		OptEmptyData:   nil,
		OptDataClass:   nil,
		OptConstraints: nil,
	}
}

func resolve(t Type, user Options) (Options, error) {
	o := baseOptions()
	t.ConfigureOptions(o)

	for k, v := range user {
		if _, ok := o[k]; !ok {
			return nil, fmt.Errorf("%w %q", ErrUndefinedOption, k)
		}
		o[k] = v
	}

	if _, ok := o[OptCompound].(bool); !ok {
		return nil, fmt.Errorf("%w: %s must be a bool", ErrInvalidOption, OptCompound)
	}
	if dc := o[OptDataClass]; dc != nil {
		if _, ok := dc.(func() any); !ok {
			return nil, fmt.Errorf("%w: %s must be a func() any", ErrInvalidOption, OptDataClass)
		}
	}
	if cs := o[OptConstraints]; cs != nil {
		if _, ok := cs.([]Constraint); !ok {
			return nil, fmt.Errorf("%w: %s must be a []Constraint", ErrInvalidOption, OptConstraints)
		}
	}

	if v, ok := t.(OptionsValidator); ok {
		if err := v.ValidateOptions(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
