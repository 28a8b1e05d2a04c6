package form

import (
	"context"
	"fmt"
)

// Form is a node of a built form tree. A Form is used by a single request
// and is not safe for concurrent use.
type Form struct {
	name      string
	typ       Type
	opts      Options
	parent    *Form
	children  []*Form
	byName    map[string]*Form
	listeners map[EventName][]Listener

	ctx       context.Context
	data      any
	submitted bool
	errs      []error
	attrs     map[any]any
}

func (f *Form) Name() string {
	return f.name
}

// FullName returns the name used for the form's inputs, nesting children
// as root[child][grandchild].
func (f *Form) FullName() string {
	if f.parent == nil {
		return f.name
	}
	p := f.parent.FullName()
	if p == "" {
		return f.name
	}
	return p + "[" + f.name + "]"
}

func (f *Form) Type() Type {
	return f.typ
}

func (f *Form) Parent() *Form {
	return f.parent
}

func (f *Form) IsRoot() bool {
	return f.parent == nil
}

// Root walks up to the outermost form of the tree.
func (f *Form) Root() *Form {
	r := f
	for !r.IsRoot() {
		r = r.parent
	}
	return r
}

// Get returns the child named name, or nil.
func (f *Form) Get(name string) *Form {
	return f.byName[name]
}

// Children returns the children in the order they were added.
func (f *Form) Children() []*Form {
	return f.children
}

func (f *Form) Option(key string) any {
	return f.opts[key]
}

func (f *Form) Options() Options {
	return f.opts
}

func (f *Form) Data() any {
	return f.data
}

// SetData replaces the bound value and hands each child its field of v. It
// is allowed until the form has been submitted, which includes PreSubmit
// listeners of the form itself.
func (f *Form) SetData(v any) error {
	if f.submitted {
		return fmt.Errorf("form %q: set data: %w", f.FullName(), ErrAlreadySubmitted)
	}
	f.setData(v)
	return nil
}

func (f *Form) setData(v any) {
	f.data = v
	for _, c := range f.children {
		c.setData(getField(v, c.name))
	}
}

func (f *Form) IsSubmitted() bool {
	return f.submitted
}

// IsValid reports whether the form and all of its descendants were
// submitted without errors.
func (f *Form) IsValid() bool {
	if !f.submitted || len(f.errs) > 0 {
		return false
	}
	for _, c := range f.children {
		if !c.IsValid() {
			return false
		}
	}
	return true
}

// Errors returns the errors recorded on this form only.
func (f *Form) Errors() []error {
	return f.errs
}

func (f *Form) AddError(err error) {
	f.errs = append(f.errs, err)
}

// Attr returns a value attached with SetAttr.
func (f *Form) Attr(key any) any {
	return f.attrs[key]
}

// SetAttr attaches a value to the form. Attributes live as long as the
// form does.
func (f *Form) SetAttr(key, v any) {
	if f.attrs == nil {
		f.attrs = make(map[any]any)
	}
	f.attrs[key] = v
}

// Context returns the context the form was submitted with, or
// context.Background before submission.
func (f *Form) Context() context.Context {
	if f.ctx == nil {
		return context.Background()
	}
	return f.ctx
}

// Submit binds payload onto the form tree. Compound forms expect a
// map[string]any keyed by child name; leaf forms take the raw value.
func (f *Form) Submit(payload any) error {
	return f.SubmitContext(context.Background(), payload)
}

// SubmitContext is Submit with a context that listeners can reach through
// Event.Context.
func (f *Form) SubmitContext(ctx context.Context, payload any) error {
	if f.submitted {
		return fmt.Errorf("form %q: %w", f.FullName(), ErrAlreadySubmitted)
	}
	f.ctx = ctx

	payload = f.dispatch(PreSubmit, payload)
	f.submitted = true

	if f.opts.Bool(OptCompound) {
		if err := f.submitCompound(payload); err != nil {
			return err
		}
	} else {
		f.submitLeaf(payload)
	}

	f.dispatch(PostSubmit, f.data)
	f.validate()

	return nil
}

func (f *Form) dispatch(e EventName, data any) any {
	ls := f.listeners[e]
	if len(ls) == 0 {
		return data
	}
	ev := &Event{form: f, data: data}
	for _, l := range ls {
		l(ev)
	}
	return ev.data
}

func (f *Form) submitCompound(payload any) error {
	var m map[string]any
	switch p := payload.(type) {
	case nil:
	case map[string]any:
		m = p
	default:
		f.AddError(fmt.Errorf("%w: expected mapping, got %T", ErrInvalidValue, payload))
	}

	for _, c := range f.children {
		if err := c.SubmitContext(f.Context(), m[c.name]); err != nil {
			return err
		}
	}

	if isEmpty(m) {
		f.data = f.opts[OptEmptyData]
		return nil
	}

	target := f.data
	if target == nil {
		target = f.newData()
	}
	for _, c := range f.children {
		if err := setField(target, c.name, c.data); err != nil {
			f.AddError(err)
		}
	}
	f.data = target

	return nil
}

func (f *Form) submitLeaf(payload any) {
	v := payload
	if rt, ok := f.typ.(ReverseTransformer); ok {
		out, err := rt.ReverseTransform(payload)
		if err != nil {
			f.AddError(err)
			f.data = nil
			return
		}
		v = out
	}
	if isEmpty(v) {
		v = f.opts[OptEmptyData]
	}
	f.data = v
}

func (f *Form) validate() {
	if len(f.errs) > 0 {
		return
	}
	cs, _ := f.opts[OptConstraints].([]Constraint)
	for _, c := range cs {
		if err := c(f.data); err != nil {
			f.AddError(err)
		}
	}
}

func (f *Form) newData() any {
	if dc, ok := f.opts[OptDataClass].(func() any); ok {
		return dc()
	}
	return map[string]any{}
}

func getField(source any, name string) any {
	switch s := source.(type) {
	case FieldGetter:
		return s.Field(name)
	case map[string]any:
		return s[name]
	}
	return nil
}

func setField(target any, name string, v any) error {
	switch t := target.(type) {
	case FieldSetter:
		return t.SetField(name, v)
	case map[string]any:
		t[name] = v
		return nil
	}
	return fmt.Errorf("%w: %T", ErrUnmappable, target)
}
