package input

import (
	"errors"
	"fmt"
	"io"
)

// Repeat replays a single source a fixed number of times as one logical
// read-only stream.
type Repeat struct {
	src       Source
	count     int
	iteration int
	closed    bool
}

// NewRepeat returns src replayed count times. A non-positive count yields an
// empty stream.
func NewRepeat(src Source, count int) *Repeat {
	if count < 0 {
		count = 0
	}
	return &Repeat{src: src, count: count}
}

// Len returns the source length multiplied by the repeat count.
func (r *Repeat) Len() int64 {
	return r.src.Len() * int64(r.count)
}

// Read fills p, rewinding the source each time it is exhausted until every
// repetition has been read.
func (r *Repeat) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && r.iteration < r.count {
		k, err := r.src.Read(p[n:])
		n += k
		switch {
		case errors.Is(err, io.EOF):
			r.iteration++
			if r.iteration < r.count {
				if _, err := r.src.Seek(0, io.SeekStart); err != nil {
					return n, err
				}
			}
		case err != nil:
			return n, err
		case k == 0:
			return n, nil
		}
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Seek positions the stream at an absolute offset. Only io.SeekStart is
// supported.
func (r *Repeat) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, ErrNotImplemented
	}
	if offset < 0 {
		return 0, fmt.Errorf("input: negative seek offset %d", offset)
	}
	size := r.src.Len()
	if size == 0 || offset >= r.Len() {
		r.iteration = r.count
		return offset, nil
	}
	r.iteration = int(offset / size)
	if _, err := r.src.Seek(offset%size, io.SeekStart); err != nil {
		return 0, err
	}
	return offset, nil
}

// Write always fails: a Repeat is a read-only view.
func (r *Repeat) Write([]byte) (int, error) {
	return 0, ErrUnsupported
}

// Close releases the underlying source once.
func (r *Repeat) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.src.Close()
}
