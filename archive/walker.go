// Package archive reads component bundles: zip archives with UIDL component
// descriptions laid out as directory tree.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// MaxEntrySize limits amount of data read from a single archive entry.
// Component descriptions are small, anything larger is rejected.
const MaxEntrySize = 16 << 20

// WalkFunc is called for every regular entry under requested prefix. The
// bundle argument is path to archive passed to Walk, name is slash separated
// entry path relative to prefix. If an error is returned walk stops.
type WalkFunc func(bundle, name string, file *zip.File) error

// IsArchive checks file signature, extension is not looked at.
func IsArchive(fname string) (bool, error) {
	kind, err := filetype.MatchFile(fname)
	if err != nil {
		return false, err
	}
	return kind == matchers.TypeZip, nil
}

// Walk visits all entries of the bundle whose path starts with prefix, in
// archive order. Bundles with absolute entries or entries containing ".."
// are rejected as a whole.
func Walk(bundle, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(bundle)
	if err != nil {
		return err
	}
	defer r.Close()

	prefix = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(prefix, `\`, "/")), "/")
	if prefix != "" {
		prefix += "/"
	}

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("bundle entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := walkFn(bundle, strings.TrimPrefix(name, prefix), f); err != nil {
			return err
		}
	}
	return nil
}

// ReadEntry returns complete content of archive entry.
func ReadEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("bundle entry %q is too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("bundle entry %q is too large", f.Name)
	}
	return data, nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
