package output

import (
	"fmt"
	"io"
	"os"

	"github.com/gofrs/flock"
)

// File is a report destination. When opened for appending, an advisory
// lock on a sibling ".lock" file is held until Close so concurrent runs
// appending to the same report do not interleave.
type File struct {
	*os.File
	lock *flock.Flock
}

// Create opens path for writing. With appendMode the file is created if
// needed and written at its end under an exclusive lock; otherwise it is
// truncated.
func Create(path string, appendMode bool) (*File, error) {
	if !appendMode {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create output: %w", err)
		}
		return &File{File: f}, nil
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock output: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("open output: %w", err)
	}
	return &File{File: f, lock: lock}, nil
}

// Close closes the file and releases the lock, if any.
func (f *File) Close() error {
	err := f.File.Close()
	if f.lock != nil {
		if uerr := f.lock.Unlock(); err == nil {
			err = uerr
		}
	}
	return err
}

var _ io.WriteCloser = (*File)(nil)
