package form

import "context"

// EventName identifies a point in the submission of a form.
type EventName int

const (
	// PreSubmit fires before children are submitted. The event data is the
	// raw payload of the form.
	PreSubmit EventName = iota
	// PostSubmit fires after the form data has been bound, before the
	// constraints run.
	PostSubmit
)

func (e EventName) String() string {
	switch e {
	case PreSubmit:
		return "pre_submit"
	case PostSubmit:
		return "post_submit"
	default:
		return "unknown"
	}
}

// Listener reacts to a form event.
type Listener func(e *Event)

// Event is passed to listeners.
type Event struct {
	form *Form
	data any
}

// Context returns the context of the submission.
func (e *Event) Context() context.Context {
	return e.form.Context()
}

func (e *Event) Form() *Form {
	return e.form
}

func (e *Event) Data() any {
	return e.data
}

// SetData replaces the event data. In PreSubmit this replaces the payload
// the children will be submitted with.
func (e *Event) SetData(v any) {
	e.data = v
}
