package engine

import (
	"unicode/utf16"

	re2 "github.com/wasilibs/go-re2"
)

type re2Compiler struct{}

func (re2Compiler) Compile(pattern string) (Matcher, error) {
	re, err := re2.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re2Matcher{re: re}, nil
}

type re2Matcher struct {
	re *re2.Regexp
}

func (m re2Matcher) FindAllUTF8(input []byte) error {
	_ = m.re.FindAllIndex(input, -1)
	return nil
}

func (m re2Matcher) FindAllUTF16(input []uint16) error {
	_ = m.re.FindAllStringIndex(string(utf16.Decode(input)), -1)
	return nil
}
