package form

import "fmt"

// Builder collects the configuration of a form tree before it is frozen
// into a Form.
type Builder struct {
	name      string
	typ       Type
	opts      Options
	data      any
	children  []*Builder
	listeners map[EventName][]Listener
	err       error
}

// NewBuilder resolves the options of t and lets it build its children.
// Errors are reported by Form.
func NewBuilder(name string, t Type, o Options) *Builder {
	b := &Builder{
		name:      name,
		typ:       t,
		listeners: make(map[EventName][]Listener),
	}

	opts, err := resolve(t, o)
	if err != nil {
		b.err = fmt.Errorf("form %q: %w", name, err)
		return b
	}
	b.opts = opts
	t.BuildForm(b, opts)

	return b
}

// Name returns the name of the form being built.
func (b *Builder) Name() string {
	return b.name
}

// Options returns the resolved options.
func (b *Builder) Options() Options {
	return b.opts
}

// Add appends a child built from t and o.
func (b *Builder) Add(name string, t Type, o Options) *Builder {
	if b.err != nil {
		return b
	}
	if !b.opts.Bool(OptCompound) {
		b.err = fmt.Errorf("form %q: add %q: %w", b.name, name, ErrNotCompound)
		return b
	}
	for _, c := range b.children {
		if c.name == name {
			b.err = fmt.Errorf("form %q: %w %q", b.name, ErrDuplicateChild, name)
			return b
		}
	}

	child := NewBuilder(name, t, o)
	if child.err != nil {
		b.err = fmt.Errorf("form %q: %w", b.name, child.err)
		return b
	}
	b.children = append(b.children, child)

	return b
}

// AddEventListener registers l for event e. Listeners run in the order
// they were added.
func (b *Builder) AddEventListener(e EventName, l Listener) *Builder {
	b.listeners[e] = append(b.listeners[e], l)
	return b
}

// SetData sets the initial bound value of the form. Children receive their
// field of it when the form is built, overriding their own initial data.
func (b *Builder) SetData(v any) *Builder {
	b.data = v
	return b
}

// Form returns the built form tree.
func (b *Builder) Form() (*Form, error) {
	if b.err != nil {
		return nil, b.err
	}
	f := b.build(nil)
	if b.data != nil {
		f.setData(b.data)
	}
	return f, nil
}

func (b *Builder) build(parent *Form) *Form {
	f := &Form{
		name:      b.name,
		typ:       b.typ,
		opts:      b.opts,
		parent:    parent,
		data:      b.data,
		listeners: b.listeners,
		byName:    make(map[string]*Form, len(b.children)),
	}
	for _, cb := range b.children {
		c := cb.build(f)
		f.children = append(f.children, c)
		f.byName[c.name] = c
	}
	return f
}
