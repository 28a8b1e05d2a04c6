package upload

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/dmitrijs2005/reform/internal/form"
	"github.com/dmitrijs2005/reform/internal/logging"
	"github.com/dmitrijs2005/reform/internal/staging"
)

// Option keys of the upload type, on top of the form base options.
const (
	OptNameType    = "name_type"
	OptNameOptions = "name_options"
	OptFileType    = "file_type"
	OptFileOptions = "file_options"
	OptTmpDir      = "tmp_dir"
)

// Type is a compound form type with a hidden handle child and a file child.
// A file accepted on one submission is staged under its handle, so a later
// submission that only carries the handle binds an equivalent file.
//
// One Type is shared by all requests; per-request state lives on the root
// form being submitted.
type Type struct {
	defaultTmpDir string
	fs            billy.Filesystem
	logger        logging.Logger
	newHandle     func() string
}

type Option func(*Type)

// WithFilesystem sets where staging directories live. Defaults to the OS
// filesystem.
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(t *Type) { t.fs = fsys }
}

func WithLogger(l logging.Logger) Option {
	return func(t *Type) { t.logger = l }
}

// WithHandles replaces the handle generator.
func WithHandles(fn func() string) Option {
	return func(t *Type) { t.newHandle = fn }
}

// NewType returns an upload type staging into defaultTmpDir unless a field
// sets tmp_dir.
func NewType(defaultTmpDir string, opts ...Option) *Type {
	t := &Type{
		defaultTmpDir: defaultTmpDir,
		fs:            osfs.New("/"),
		logger:        logging.NewDiscardLogger(),
		newHandle:     NewHandle,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Filesystem returns the filesystem staging directories live on. Request
// uploads spooled onto it can be staged with a rename.
func (t *Type) Filesystem() billy.Filesystem {
	return t.fs
}

func (t *Type) ConfigureOptions(o form.Options) {
	o[form.OptCompound] = true
	o[form.OptDataClass] = func() any { return &Upload{} }
	o[form.OptEmptyData] = nil
	o[form.OptLabel] = false
	o[OptNameType] = form.HiddenType{}
	o[OptNameOptions] = form.Options{}
	o[OptFileType] = form.FileType{}
	o[OptFileOptions] = form.Options{}
	o[OptTmpDir] = t.defaultTmpDir
}

func (t *Type) ValidateOptions(o form.Options) error {
	for _, k := range []string{OptNameType, OptFileType} {
		if _, ok := o[k].(form.Type); !ok {
			return fmt.Errorf("%w: %s must be a form.Type, got %T", form.ErrInvalidOption, k, o[k])
		}
	}
	for _, k := range []string{OptNameOptions, OptFileOptions} {
		if v := o[k]; v != nil {
			if _, ok := v.(form.Options); !ok {
				return fmt.Errorf("%w: %s must be form.Options, got %T", form.ErrInvalidOption, k, v)
			}
		}
	}
	if s, ok := o[OptTmpDir].(string); !ok || s == "" {
		return fmt.Errorf("%w: %s must be a non-empty string", form.ErrInvalidOption, OptTmpDir)
	}
	dc, ok := o[form.OptDataClass].(func() any)
	if !ok {
		return fmt.Errorf("%w: %s is required", form.ErrInvalidOption, form.OptDataClass)
	}
	if _, ok := dc().(Record); !ok {
		return fmt.Errorf("%w: %s must build an upload.Record", form.ErrInvalidOption, form.OptDataClass)
	}
	return nil
}

func (t *Type) BuildForm(b *form.Builder, o form.Options) {
	nameOpts, _ := o[OptNameOptions].(form.Options)
	fileOpts, _ := o[OptFileOptions].(form.Options)

	b.Add(FieldName, o[OptNameType].(form.Type), nameOpts.Clone()).
		Add(FieldFile, o[OptFileType].(form.Type), fileOpts.Clone()).
		AddEventListener(form.PreSubmit, t.preSubmit)
}

// preSubmit picks one of: fresh file (with or without a handle), handle
// only (rebuild the file from staging), or nothing. Whenever a file ends up
// in the payload the field is registered for Commit and binding restarts
// from an empty record.
func (t *Type) preSubmit(e *form.Event) {
	f := e.Form()
	ctx := e.Context()
	log := t.logger.With("field", f.FullName())

	payload, _ := e.Data().(map[string]any)
	name, _ := payload[FieldName].(string)
	file, _ := payload[FieldFile].(*staging.File)

	if name != "" && !staging.ValidName(name) {
		log.Warn(ctx, "dropping malformed upload handle")
		name = ""
	}

	if name == "" && file == nil {
		// an untouched widget posts empty strings for both inputs
		e.SetData(nil)
		return
	}

	if file == nil {
		rebuilt, err := t.store(f).Reconstruct(name)
		if err != nil {
			if errors.Is(err, staging.ErrNotStaged) {
				log.Debug(ctx, "upload handle has nothing staged", "handle", name)
			} else {
				log.Warn(ctx, "reading staged upload failed", "handle", name, "error", err)
			}
			e.SetData(nil)
			return
		}
		log.Debug(ctx, "upload rebound from staging", "handle", name)
		file = rebuilt
	}

	if name == "" {
		name = t.newHandle()
		log.Debug(ctx, "upload handle assigned", "handle", name)
	}

	t.register(f)

	if err := f.SetData(f.Option(form.OptDataClass).(func() any)()); err != nil {
		log.Error(ctx, "resetting upload record failed", "error", err)
	}

	rewritten := make(map[string]any, len(payload)+2)
	maps.Copy(rewritten, payload)
	rewritten[FieldName] = name
	rewritten[FieldFile] = file
	e.SetData(rewritten)
}

// store returns the staging store of f. A relative tmp_dir is taken from the
// working directory.
func (t *Type) store(f *form.Form) *staging.Store {
	dir := f.Options().String(OptTmpDir)
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return staging.NewStore(t.fs, dir)
}
