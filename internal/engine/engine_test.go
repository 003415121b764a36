package engine_test

import (
	"errors"
	"testing"
	"unicode/utf16"

	"github.com/torosent/rxbench/internal/engine"
)

func TestBuiltinEnginesMatchBothEncodings(t *testing.T) {
	text := "alpha 42 beta 7 gamma 1999"
	utf8Input := []byte(text)
	utf16Input := utf16.Encode([]rune(text))

	for _, f := range engine.Builtin() {
		t.Run(f.Name, func(t *testing.T) {
			m, err := f.New().Compile(`[0-9]+`)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if err := m.FindAllUTF8(utf8Input); err != nil {
				t.Errorf("FindAllUTF8: %v", err)
			}
			if err := m.FindAllUTF16(utf16Input); err != nil {
				t.Errorf("FindAllUTF16: %v", err)
			}
			if err := m.FindAllUTF8(nil); err != nil {
				t.Errorf("FindAllUTF8 on empty input: %v", err)
			}
		})
	}
}

func TestBuiltinEnginesRejectInvalidPattern(t *testing.T) {
	for _, f := range engine.Builtin() {
		t.Run(f.Name, func(t *testing.T) {
			if _, err := f.New().Compile(`(unclosed`); err == nil {
				t.Error("expected compile error for unbalanced parenthesis")
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{name: "empty selects all", input: nil, want: engine.Names()},
		{name: "order preserved", input: []string{"re2", "regexp"}, want: []string{"re2", "regexp"}},
		{name: "case and duplicates", input: []string{"CoreGex", "coregex", " "}, want: []string{"coregex"}},
		{name: "unknown", input: []string{"pcre"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Select(tt.input)
			if tt.wantErr {
				if !errors.Is(err, engine.ErrUnknownEngine) {
					t.Fatalf("expected ErrUnknownEngine, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d engines, got %d", len(tt.want), len(got))
			}
			for i, f := range got {
				if f.Name != tt.want[i] {
					t.Errorf("engine %d = %q, want %q", i, f.Name, tt.want[i])
				}
				if f.New == nil {
					t.Errorf("engine %q has no constructor", f.Name)
				}
			}
		})
	}
}

func TestNewReturnsIndependentCompilers(t *testing.T) {
	for _, f := range engine.Builtin() {
		a, b := f.New(), f.New()
		if a == nil || b == nil {
			t.Fatalf("%s: New returned nil", f.Name)
		}
	}
}
