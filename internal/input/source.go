// Package input provides read-only byte sources for benchmark datasets and
// the composites that join or replay them without copying.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrUnsupported is returned by write operations on read-only sources.
	ErrUnsupported = errors.New("input: operation not supported on read-only source")

	// ErrNotImplemented is returned for seeks relative to anything other than
	// the start of a composite source.
	ErrNotImplemented = errors.New("input: only io.SeekStart is implemented")
)

// Source is a sequential byte source with a known length that can be
// repositioned relative to its start.
type Source interface {
	io.Reader
	io.Seeker
	io.Closer
	Len() int64
}

// Opener lazily opens a Source. Each call returns a fresh handle owned by
// the caller.
type Opener func() (Source, error)

// FileSource is a Source backed by an open file.
type FileSource struct {
	*os.File
	size int64
}

// OpenFile opens path as a FileSource.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	return &FileSource{File: f, size: info.Size()}, nil
}

// Len returns the file size at open time.
func (f *FileSource) Len() int64 { return f.size }

// BytesSource is an in-memory Source.
type BytesSource struct {
	*bytes.Reader
}

// NewBytesSource wraps data as a Source. data must not be modified while
// the source is in use.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{Reader: bytes.NewReader(data)}
}

// Len returns the total length of the underlying data.
func (b *BytesSource) Len() int64 { return b.Size() }

// Close is a no-op.
func (b *BytesSource) Close() error { return nil }

// File returns an Opener for the file at path.
func File(path string) Opener {
	return func() (Source, error) {
		return OpenFile(path)
	}
}

// Bytes returns an Opener over in-memory data.
func Bytes(data []byte) Opener {
	return func() (Source, error) {
		return NewBytesSource(data), nil
	}
}

// Repeated returns an Opener replaying the source opened by op count times.
func Repeated(op Opener, count int) Opener {
	return func() (Source, error) {
		src, err := op()
		if err != nil {
			return nil, err
		}
		return NewRepeat(src, count), nil
	}
}

// OpenAll opens every opener in order. If any fails, the sources opened so
// far are closed and the error is returned.
func OpenAll(openers []Opener) ([]Source, error) {
	sources := make([]Source, 0, len(openers))
	for _, op := range openers {
		src, err := op()
		if err != nil {
			for _, s := range sources {
				s.Close()
			}
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// Walk expands paths into file openers. Directories are walked recursively;
// files within a directory are visited in lexical order. Paths are returned
// alongside the openers for display.
func Walk(paths ...string) ([]string, []Opener, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, fmt.Errorf("dataset %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		var found []string
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("dataset %s: %w", root, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	openers := make([]Opener, len(files))
	for i, path := range files {
		openers[i] = File(path)
	}
	return files, openers, nil
}
