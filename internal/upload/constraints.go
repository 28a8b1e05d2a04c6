package upload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/reform/internal/form"
	"github.com/dmitrijs2005/reform/internal/staging"
)

var (
	ErrFileTooLarge = errors.New("file is too large")
	ErrMimeType     = errors.New("file type is not allowed")
)

// MaxSize limits the size of the bytes behind a file child. Both fresh and
// rebound files are measured on disk.
func MaxSize(limit int64) form.Constraint {
	return func(data any) error {
		f, ok := data.(*staging.File)
		if !ok || f == nil {
			return nil
		}
		size, err := f.Size()
		if err != nil {
			return err
		}
		if size > limit {
			return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, size, limit)
		}
		return nil
	}
}

// MimeTypes accepts files whose client-reported type matches one of allowed.
// A trailing "/*" matches a whole family, e.g. "image/*". Files without a
// reported type are rejected.
func MimeTypes(allowed ...string) form.Constraint {
	return func(data any) error {
		f, ok := data.(*staging.File)
		if !ok || f == nil {
			return nil
		}
		mt := strings.ToLower(f.ClientMimeType())
		if mt != "" {
			for _, a := range allowed {
				a = strings.ToLower(a)
				if a == mt {
					return nil
				}
				if prefix, ok := strings.CutSuffix(a, "/*"); ok && strings.HasPrefix(mt, prefix+"/") {
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %q", ErrMimeType, mt)
	}
}
