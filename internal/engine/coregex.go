package engine

import (
	"unicode/utf16"

	"github.com/coregx/coregex"
)

type coregexCompiler struct{}

func (coregexCompiler) Compile(pattern string) (Matcher, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return coregexMatcher{re: re}, nil
}

type coregexMatcher struct {
	re *coregex.Regexp
}

func (m coregexMatcher) FindAllUTF8(input []byte) error {
	_ = m.re.FindAllIndex(input, -1)
	return nil
}

func (m coregexMatcher) FindAllUTF16(input []uint16) error {
	_ = m.re.FindAllStringIndex(string(utf16.Decode(input)), -1)
	return nil
}
