package output

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// StatusWriter is a status sink that stamps every line with the time
// elapsed since the writer was created. Partial lines are passed through
// as they arrive so "Reading dataset..." shows before the read finishes.
type StatusWriter struct {
	mu          sync.Mutex
	w           io.Writer
	start       time.Time
	now         func() time.Time
	atLineStart bool
}

// NewStatusWriter wraps w. A nil writer discards everything.
func NewStatusWriter(w io.Writer) *StatusWriter {
	if w == nil {
		w = io.Discard
	}
	return &StatusWriter{
		w:           w,
		start:       time.Now(),
		now:         time.Now,
		atLineStart: true,
	}
}

// Write implements io.Writer.
func (s *StatusWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	rest := p
	for len(rest) > 0 {
		if s.atLineStart {
			fmt.Fprintf(&buf, "[%7.2fs] ", s.now().Sub(s.start).Seconds())
			s.atLineStart = false
		}
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			buf.Write(rest)
			break
		}
		buf.Write(rest[:i+1])
		rest = rest[i+1:]
		s.atLineStart = true
	}
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
