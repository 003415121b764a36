// Package engine defines the compile/match contract every regular
// expression engine is wrapped behind, and the registry of built-in
// adapters.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEngine is returned by Select for names not in the registry.
var ErrUnknownEngine = errors.New("unknown engine")

// Matcher runs a full scan for every match over an input. Match results
// are discarded; only the work of finding them matters.
type Matcher interface {
	FindAllUTF16(input []uint16) error
	FindAllUTF8(input []byte) error
}

// Compiler turns a pattern into a Matcher.
type Compiler interface {
	Compile(pattern string) (Matcher, error)
}

// Factory names an engine and creates fresh compilers for it.
type Factory struct {
	Name string
	New  func() Compiler
	// Concurrent reports whether a single Matcher may be used from several
	// goroutines at once.
	Concurrent bool
}

// Builtin returns the registry of bundled adapters in display order.
func Builtin() []Factory {
	return []Factory{
		{Name: "regexp", New: func() Compiler { return stdCompiler{} }, Concurrent: true},
		{Name: "regexp2", New: func() Compiler { return regexp2Compiler{} }, Concurrent: true},
		{Name: "re2", New: func() Compiler { return re2Compiler{} }, Concurrent: true},
		{Name: "coregex", New: func() Compiler { return coregexCompiler{} }, Concurrent: true},
	}
}

// Names lists the built-in engine names.
func Names() []string {
	builtin := Builtin()
	names := make([]string, len(builtin))
	for i, f := range builtin {
		names[i] = f.Name
	}
	return names
}

// Select picks factories by name, preserving the requested order. An empty
// selection returns every built-in engine. Names are case-insensitive and
// duplicates are ignored.
func Select(names []string) ([]Factory, error) {
	builtin := Builtin()
	if len(names) == 0 {
		return builtin, nil
	}
	selected := make([]Factory, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		f, ok := lookup(builtin, name)
		if !ok {
			return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownEngine, raw, strings.Join(Names(), ", "))
		}
		seen[name] = true
		selected = append(selected, f)
	}
	return selected, nil
}

func lookup(factories []Factory, name string) (Factory, bool) {
	for _, f := range factories {
		if f.Name == name {
			return f, true
		}
	}
	return Factory{}, false
}
