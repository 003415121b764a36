package engine

import (
	"regexp"
	"unicode/utf16"
)

// stdCompiler adapts the standard library's RE2-style engine. It has no
// UTF-16 entry point, so UTF-16 input is transcoded inside the match call.
type stdCompiler struct{}

func (stdCompiler) Compile(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return stdMatcher{re: re}, nil
}

type stdMatcher struct {
	re *regexp.Regexp
}

func (m stdMatcher) FindAllUTF8(input []byte) error {
	_ = m.re.FindAllIndex(input, -1)
	return nil
}

func (m stdMatcher) FindAllUTF16(input []uint16) error {
	_ = m.re.FindAllStringIndex(string(utf16.Decode(input)), -1)
	return nil
}
