package form

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name  string
	Email string
}

func (p *person) Field(name string) any {
	switch name {
	case "name":
		return p.Name
	case "email":
		return p.Email
	}
	return nil
}

func (p *person) SetField(name string, v any) error {
	s, _ := v.(string)
	switch name {
	case "name":
		p.Name = s
	case "email":
		p.Email = s
	default:
		return ErrUnmappable
	}
	return nil
}

type fakeFile struct{ name string }

func (f *fakeFile) ClientOriginalName() string { return f.name }
func (f *fakeFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("x")), nil
}

func personForm(t *testing.T) *Form {
	t.Helper()
	b := NewBuilder("person", FormType{}, Options{
		OptDataClass: func() any { return &person{} },
	})
	b.Add("name", TextType{}, Options{OptConstraints: []Constraint{NotBlank()}})
	b.Add("email", TextType{}, nil)
	f, err := b.Form()
	require.NoError(t, err)
	return f
}

func TestSubmit_MapsChildrenOntoDataClass(t *testing.T) {
	f := personForm(t)

	require.NoError(t, f.Submit(map[string]any{"name": "alice", "email": "a@example.com"}))

	p, ok := f.Data().(*person)
	require.True(t, ok)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "a@example.com", p.Email)
	assert.True(t, f.IsValid())
}

func TestSubmit_EmptyPayloadBindsEmptyData(t *testing.T) {
	f := personForm(t)

	require.NoError(t, f.Submit(map[string]any{"name": "", "email": ""}))

	assert.Nil(t, f.Data())
	assert.False(t, f.IsValid(), "name is NotBlank")
	assert.ErrorIs(t, f.Get("name").Errors()[0], ErrNotBlank)
}

func TestSubmit_KeepsExistingData(t *testing.T) {
	b := NewBuilder("person", FormType{}, Options{
		OptDataClass: func() any { return &person{} },
	})
	b.Add("name", TextType{}, nil)
	existing := &person{Name: "old", Email: "old@example.com"}
	b.SetData(existing)
	f, err := b.Form()
	require.NoError(t, err)

	require.NoError(t, f.Submit(map[string]any{"name": "new"}))

	assert.Same(t, existing, f.Data())
	assert.Equal(t, "new", existing.Name)
	assert.Equal(t, "old@example.com", existing.Email)
}

func TestSetData_PropagatesToChildren(t *testing.T) {
	b := NewBuilder("person", FormType{}, nil)
	b.Add("name", TextType{}, nil)
	b.Add("email", TextType{}, nil)
	b.SetData(&person{Name: "alice", Email: "a@example.com"})
	f, err := b.Form()
	require.NoError(t, err)

	assert.Equal(t, "alice", f.Get("name").Data())
	assert.Equal(t, "a@example.com", f.Get("email").Data())

	require.NoError(t, f.SetData(map[string]any{"name": "bob"}))
	assert.Equal(t, "bob", f.Get("name").Data())
	assert.Nil(t, f.Get("email").Data())
}

func TestSubmit_WithoutDataClassUsesMap(t *testing.T) {
	b := NewBuilder("", FormType{}, nil)
	b.Add("title", TextType{}, nil)
	f, err := b.Form()
	require.NoError(t, err)

	require.NoError(t, f.Submit(map[string]any{"title": "hi"}))

	assert.Equal(t, map[string]any{"title": "hi"}, f.Data())
}

func TestSubmit_Twice(t *testing.T) {
	f := personForm(t)
	require.NoError(t, f.Submit(map[string]any{"name": "a"}))

	err := f.Submit(map[string]any{"name": "b"})
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmit_InvalidLeafValue(t *testing.T) {
	f := personForm(t)

	require.NoError(t, f.Submit(map[string]any{"name": 42}))

	name := f.Get("name")
	require.Len(t, name.Errors(), 1, "constraints are skipped after a transformation error")
	assert.ErrorIs(t, name.Errors()[0], ErrInvalidValue)
	assert.False(t, f.IsValid())
}

func TestSubmit_NonMappingPayloadOnCompound(t *testing.T) {
	f := personForm(t)

	require.NoError(t, f.Submit("nope"))

	require.NotEmpty(t, f.Errors())
	assert.ErrorIs(t, f.Errors()[0], ErrInvalidValue)
}

func TestPreSubmit_RewritesPayloadAndData(t *testing.T) {
	fresh := &person{}
	var seen any

	b := NewBuilder("person", FormType{}, Options{
		OptDataClass: func() any { return &person{} },
	})
	b.Add("name", TextType{}, nil)
	b.AddEventListener(PreSubmit, func(e *Event) {
		seen = e.Data()
		require.NoError(t, e.Form().SetData(fresh))
		e.SetData(map[string]any{"name": "rewritten"})
	})
	b.SetData(&person{Name: "stale", Email: "stale@example.com"})
	f, err := b.Form()
	require.NoError(t, err)

	require.NoError(t, f.Submit(map[string]any{"name": "raw"}))

	assert.Equal(t, map[string]any{"name": "raw"}, seen)
	assert.Same(t, fresh, f.Data())
	assert.Equal(t, person{Name: "rewritten"}, *fresh)
}

func TestSubmitContext_ReachesChildListeners(t *testing.T) {
	type ctxKey struct{}
	var got any

	b := NewBuilder("", FormType{}, nil)
	b.Add("inner", FormType{}, nil)
	f, err := b.Form()
	require.NoError(t, err)
	f.Get("inner").listeners[PreSubmit] = []Listener{func(e *Event) {
		got = e.Context().Value(ctxKey{})
	}}

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	require.NoError(t, f.SubmitContext(ctx, map[string]any{"inner": map[string]any{}}))

	assert.Equal(t, "req-1", got)
}

func TestPostSubmit_SeesBoundData(t *testing.T) {
	var got any
	b := NewBuilder("", FormType{}, nil)
	b.Add("title", TextType{}, nil)
	b.AddEventListener(PostSubmit, func(e *Event) { got = e.Data() })
	f, err := b.Form()
	require.NoError(t, err)

	require.NoError(t, f.Submit(map[string]any{"title": "x"}))

	assert.Equal(t, map[string]any{"title": "x"}, got)
}

func TestSetData_AfterSubmit(t *testing.T) {
	f := personForm(t)
	require.NoError(t, f.Submit(nil))

	require.ErrorIs(t, f.SetData(&person{}), ErrAlreadySubmitted)
}

func TestFileType(t *testing.T) {
	ff := &fakeFile{name: "a.txt"}

	tests := []struct {
		name    string
		in      any
		want    any
		wantErr bool
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty input", in: "", want: nil},
		{name: "file", in: ff, want: ff},
		{name: "text", in: "hello", wantErr: true},
		{name: "number", in: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileType{}.ReverseTransform(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTreeNavigation(t *testing.T) {
	b := NewBuilder("profile", FormType{}, nil)
	b.Add("avatar", FormType{}, nil)
	root, err := b.Form()
	require.NoError(t, err)

	avatar := root.Get("avatar")
	require.NotNil(t, avatar)
	assert.True(t, root.IsRoot())
	assert.False(t, avatar.IsRoot())
	assert.Same(t, root, avatar.Root())
	assert.Same(t, root, avatar.Parent())
	assert.Equal(t, "profile[avatar]", avatar.FullName())
	assert.Nil(t, root.Get("missing"))
}

func TestFullName_UnnamedRoot(t *testing.T) {
	b := NewBuilder("", FormType{}, nil)
	b.Add("title", TextType{}, nil)
	root, err := b.Form()
	require.NoError(t, err)

	assert.Equal(t, "title", root.Get("title").FullName())
}

func TestAttr(t *testing.T) {
	f := personForm(t)
	type key struct{}

	assert.Nil(t, f.Attr(key{}))
	f.SetAttr(key{}, 7)
	assert.Equal(t, 7, f.Attr(key{}))
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("undefined option", func(t *testing.T) {
		_, err := NewBuilder("x", TextType{}, Options{"nope": 1}).Form()
		require.ErrorIs(t, err, ErrUndefinedOption)
	})

	t.Run("bad data_class", func(t *testing.T) {
		_, err := NewBuilder("x", FormType{}, Options{OptDataClass: "person"}).Form()
		require.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("bad constraints", func(t *testing.T) {
		_, err := NewBuilder("x", TextType{}, Options{OptConstraints: "x"}).Form()
		require.ErrorIs(t, err, ErrInvalidOption)
	})

	t.Run("child on leaf", func(t *testing.T) {
		_, err := NewBuilder("x", TextType{}, nil).Add("y", TextType{}, nil).Form()
		require.ErrorIs(t, err, ErrNotCompound)
	})

	t.Run("duplicate child", func(t *testing.T) {
		b := NewBuilder("x", FormType{}, nil)
		b.Add("y", TextType{}, nil).Add("y", TextType{}, nil)
		_, err := b.Form()
		require.ErrorIs(t, err, ErrDuplicateChild)
	})

	t.Run("child error propagates", func(t *testing.T) {
		b := NewBuilder("x", FormType{}, nil)
		b.Add("y", TextType{}, Options{"nope": true})
		_, err := b.Form()
		require.True(t, errors.Is(err, ErrUndefinedOption))
	})
}

func TestIsValid_NotSubmitted(t *testing.T) {
	f := personForm(t)
	assert.False(t, f.IsValid())
}

func TestEventName_String(t *testing.T) {
	assert.Equal(t, "pre_submit", PreSubmit.String())
	assert.Equal(t, "post_submit", PostSubmit.String())
	assert.Equal(t, "unknown", EventName(99).String())
}
