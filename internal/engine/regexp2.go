package engine

import (
	"unicode/utf16"

	"github.com/dlclark/regexp2"
)

// regexp2Compiler adapts the backtracking engine with .NET syntax. It
// matches over runes, so both encodings are decoded to runes first.
type regexp2Compiler struct{}

func (regexp2Compiler) Compile(pattern string) (Matcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	return regexp2Matcher{re: re}, nil
}

type regexp2Matcher struct {
	re *regexp2.Regexp
}

func (m regexp2Matcher) FindAllUTF8(input []byte) error {
	return m.drain(m.re.FindStringMatch(string(input)))
}

func (m regexp2Matcher) FindAllUTF16(input []uint16) error {
	return m.drain(m.re.FindRunesMatch(utf16.Decode(input)))
}

func (m regexp2Matcher) drain(match *regexp2.Match, err error) error {
	for match != nil && err == nil {
		match, err = m.re.FindNextMatch(match)
	}
	return err
}
