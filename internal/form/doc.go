// Package form is a small form tree used to bind submitted request data onto
// application values.
//
// # Overview
//
// A form is built from a Type and a set of Options. Compound types add named
// children in BuildForm; leaf types turn the raw submitted value into bound
// data through ReverseTransform. Submitting the root form walks the tree:
//
//  1. PreSubmit listeners may rewrite the payload (Event.SetData) and reset
//     the bound value (Form.SetData) before any child is touched.
//  2. Every child is submitted with its key of the payload mapping.
//  3. Child data is mapped onto the current value, or onto a fresh value from
//     the data_class option, or empty_data is bound when nothing was sent.
//  4. PostSubmit listeners run, then the constraints option is evaluated.
//
// Per-request state that must outlive a single field is attached to the root
// form with Attr and SetAttr.
//
// # Error Handling
//
// Build failures are returned from Builder.Form. Submission never fails on
// bad input; violations are recorded on the form and reported by IsValid and
// Errors. Sentinel errors: ErrAlreadySubmitted, ErrUndefinedOption,
// ErrInvalidOption, ErrInvalidValue, ErrNotBlank.
package form
