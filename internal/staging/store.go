package staging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const (
	DirPerm  os.FileMode = 0o770
	FilePerm os.FileMode = 0o660
)

// Store is a staging directory holding <name> with the raw bytes and
// <name>.json with the client metadata.
type Store struct {
	fs  billy.Filesystem
	dir string
}

func NewStore(fsys billy.Filesystem, dir string) *Store {
	if dir != "" {
		dir = filepath.Clean(dir)
	}
	return &Store{fs: fsys, dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// DataPath returns the location of the bytes staged under name.
func (s *Store) DataPath(name string) string {
	return s.fs.Join(s.dir, name)
}

// SidecarPath returns the location of the metadata staged under name.
func (s *Store) SidecarPath(name string) string {
	return s.DataPath(name) + sidecarExt
}

// Reconstruct rebuilds the uploaded file staged under name. It returns
// ErrNotStaged when there are no bytes. A missing or unreadable sidecar is
// not an error: the name stands in for the original name and the MIME type
// and size stay unknown.
func (s *Store) Reconstruct(name string) (*File, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	p := s.DataPath(name)
	info, err := s.fs.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotStaged, name)
		}
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrNotStaged, name)
	}

	var meta Metadata
	if b, err := util.ReadFile(s.fs, s.SidecarPath(name)); err == nil {
		meta = decodeMetadata(b, name)
	} else {
		meta = Metadata{OriginalName: name}
	}

	return &File{fs: s.fs, path: p, meta: meta}, nil
}

// Stage writes the sidecar for f and then moves its bytes under name,
// replacing whatever was staged there.
func (s *Store) Stage(f *File, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if s.dir != "" {
		if err := s.fs.MkdirAll(s.dir, DirPerm); err != nil {
			return fmt.Errorf("mkdir %s: %w", s.dir, err)
		}
	}

	b, err := json.Marshal(f.Metadata())
	if err != nil {
		return fmt.Errorf("encode metadata for %q: %w", name, err)
	}
	if err := util.WriteFile(s.fs, s.SidecarPath(name), b, FilePerm); err != nil {
		return fmt.Errorf("write sidecar for %q: %w", name, err)
	}

	if err := f.Move(s.fs, s.DataPath(name)); err != nil {
		return fmt.Errorf("move %q: %w", name, err)
	}

	return nil
}
