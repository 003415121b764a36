package bench_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"unicode/utf16"

	"github.com/torosent/rxbench/internal/engine"
)

var errBadPattern = errors.New("bad pattern")

// counters tracks how a fake engine was driven.
type counters struct {
	compilers atomic.Int64
	compiles  atomic.Int64
	utf8      atomic.Int64
	utf16     atomic.Int64

	mu     sync.Mutex
	inputs []string
}

func (c *counters) record(s string) {
	c.mu.Lock()
	c.inputs = append(c.inputs, s)
	c.mu.Unlock()
}

func (c *counters) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.inputs...)
}

func fakeFactory(name string, c *counters, concurrent bool) engine.Factory {
	return engine.Factory{
		Name: name,
		New: func() engine.Compiler {
			c.compilers.Add(1)
			return fakeCompiler{c: c}
		},
		Concurrent: concurrent,
	}
}

type fakeCompiler struct {
	c *counters
}

func (f fakeCompiler) Compile(pattern string) (engine.Matcher, error) {
	f.c.compiles.Add(1)
	if pattern == "bad" {
		return nil, errBadPattern
	}
	return fakeMatcher{c: f.c, pattern: pattern}, nil
}

type fakeMatcher struct {
	c       *counters
	pattern string
}

func (m fakeMatcher) FindAllUTF8(input []byte) error {
	m.c.utf8.Add(1)
	m.c.record(string(input))
	if m.pattern == "explode" {
		return errBadPattern
	}
	return nil
}

func (m fakeMatcher) FindAllUTF16(input []uint16) error {
	m.c.utf16.Add(1)
	m.c.record(string(utf16.Decode(input)))
	if m.pattern == "explode" {
		return errBadPattern
	}
	return nil
}
