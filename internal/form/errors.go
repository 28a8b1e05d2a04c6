package form

import "errors"

var (
	// build errors
	ErrUndefinedOption = errors.New("undefined option")
	ErrInvalidOption   = errors.New("invalid option")
	ErrDuplicateChild  = errors.New("duplicate child")
	ErrNotCompound     = errors.New("form is not compound")

	// submission errors
	ErrAlreadySubmitted = errors.New("form already submitted")
	ErrInvalidValue     = errors.New("invalid value")
	ErrUnmappable       = errors.New("data cannot be mapped")

	// constraint violations
	ErrNotBlank = errors.New("value should not be blank")
)
