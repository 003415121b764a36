package input

import (
	"errors"
	"fmt"
	"io"
)

// Concat joins sources end to end into one logical read-only stream.
// Closing a Concat closes every constituent exactly once.
type Concat struct {
	sources []Source
	current int
	closed  bool
}

// NewConcat returns the concatenation of sources in order.
func NewConcat(sources ...Source) *Concat {
	return &Concat{sources: append([]Source(nil), sources...)}
}

// Len returns the sum of the constituent lengths.
func (c *Concat) Len() int64 {
	var total int64
	for _, s := range c.sources {
		total += s.Len()
	}
	return total
}

// Read fills p from the current constituent, moving on to the next one
// (rewound to its start) whenever the current one is exhausted.
func (c *Concat) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && c.current < len(c.sources) {
		k, err := c.sources[c.current].Read(p[n:])
		n += k
		switch {
		case errors.Is(err, io.EOF):
			c.current++
			if c.current < len(c.sources) {
				if _, err := c.sources[c.current].Seek(0, io.SeekStart); err != nil {
					return n, err
				}
			}
		case err != nil:
			return n, err
		case k == 0:
			// The constituent made no progress; hand back what we have.
			return n, nil
		}
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Seek positions the stream at an absolute offset. Only io.SeekStart is
// supported. Offsets at or past the end leave the stream exhausted.
func (c *Concat) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, ErrNotImplemented
	}
	if offset < 0 {
		return 0, fmt.Errorf("input: negative seek offset %d", offset)
	}
	c.current = 0
	sub := offset
	for c.current < len(c.sources) && sub >= c.sources[c.current].Len() {
		sub -= c.sources[c.current].Len()
		c.current++
	}
	if c.current < len(c.sources) {
		if _, err := c.sources[c.current].Seek(sub, io.SeekStart); err != nil {
			return 0, err
		}
	}
	return offset, nil
}

// Write always fails: a Concat is a read-only view.
func (c *Concat) Write([]byte) (int, error) {
	return 0, ErrUnsupported
}

// Close releases every constituent. Subsequent calls are no-ops.
func (c *Concat) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for _, s := range c.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
