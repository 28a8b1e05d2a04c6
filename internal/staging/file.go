package staging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
)

// File is an uploaded file: either spooled from the current request or
// reconstructed from a staging directory. Both expose the same surface.
type File struct {
	fs        billy.Filesystem
	path      string
	meta      Metadata
	temporary bool
}

// NewFile wraps an existing file at path on fsys.
func NewFile(fsys billy.Filesystem, path string, meta Metadata) *File {
	return &File{fs: fsys, path: path, meta: meta.clone()}
}

// Spool copies a multipart upload into a temporary file under dir. The
// result is removed by Discard unless it has been moved.
func Spool(fsys billy.Filesystem, dir string, fh *multipart.FileHeader) (*File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	dst, err := fsys.TempFile(dir, "upload-")
	if err != nil {
		return nil, fmt.Errorf("spool %q: %w", fh.Filename, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = fsys.Remove(dst.Name())
		return nil, fmt.Errorf("spool %q: %w", fh.Filename, err)
	}
	if err := dst.Close(); err != nil {
		_ = fsys.Remove(dst.Name())
		return nil, fmt.Errorf("spool %q: %w", fh.Filename, err)
	}

	size := fh.Size
	meta := Metadata{OriginalName: fh.Filename, Size: &size}
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		meta.MimeType = &ct
	}

	return &File{fs: fsys, path: dst.Name(), meta: meta, temporary: true}, nil
}

// ClientOriginalName returns the file name reported by the client.
func (f *File) ClientOriginalName() string {
	return f.meta.OriginalName
}

// ClientMimeType returns the MIME type reported by the client, or "".
func (f *File) ClientMimeType() string {
	if f.meta.MimeType == nil {
		return ""
	}
	return *f.meta.MimeType
}

// Metadata returns a copy of the client-reported metadata.
func (f *File) Metadata() Metadata {
	return f.meta.clone()
}

// Path returns the current location of the bytes.
func (f *File) Path() string {
	return f.path
}

// Size returns the size of the bytes on disk.
func (f *File) Size() (int64, error) {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return info.Size(), nil
}

// Open opens the bytes for reading.
func (f *File) Open() (io.ReadCloser, error) {
	r, err := f.fs.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	return r, nil
}

// Move puts the bytes at path on dst, replacing what is there. Moving a file
// onto its current location does nothing.
func (f *File) Move(dst billy.Filesystem, path string) error {
	if f.fs == dst && filepath.Clean(f.path) == filepath.Clean(path) {
		return nil
	}

	if f.fs == dst {
		if err := dst.Rename(f.path, path); err == nil {
			f.path = path
			f.temporary = false
			return nil
		}
	}

	if err := copyFile(f.fs, f.path, dst, path); err != nil {
		return err
	}
	_ = f.fs.Remove(f.path)

	f.fs = dst
	f.path = path
	f.temporary = false

	return nil
}

// Discard removes a spooled file that was never moved. Other files are left
// alone.
func (f *File) Discard() error {
	if !f.temporary {
		return nil
	}
	if err := f.fs.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	f.temporary = false
	return nil
}

// copyFile writes into a temp file next to the destination and renames it
// into place, so readers never see a partial file.
func copyFile(srcFS billy.Filesystem, srcPath string, dstFS billy.Filesystem, dstPath string) error {
	src, err := srcFS.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()

	tmp, err := dstFS.TempFile(filepath.Dir(dstPath), ".move-")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", dstPath, err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = dstFS.Remove(tmp.Name())
		return fmt.Errorf("copy %s: %w", srcPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = dstFS.Remove(tmp.Name())
		return fmt.Errorf("copy %s: %w", srcPath, err)
	}

	if err := dstFS.Rename(tmp.Name(), dstPath); err != nil {
		_ = dstFS.Remove(tmp.Name())
		return fmt.Errorf("rename into %s: %w", dstPath, err)
	}

	return nil
}
