package input

import (
	"fmt"
	"io"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding selects how a dataset is prepared for matching.
type Encoding string

const (
	UTF8  Encoding = "UTF-8"
	UTF16 Encoding = "UTF-16"
)

// ReadUTF8 reads r to the end and returns the raw bytes.
func ReadUTF8(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return data, nil
}

// ReadUTF16 decodes r as text and returns it as UTF-16 code units. A byte
// order mark selects UTF-8 or UTF-16 (either endianness); without one the
// input is taken as UTF-8. Invalid sequences decode to U+FFFD.
func ReadUTF16(r io.Reader) ([]uint16, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return utf16.Encode([]rune(string(text))), nil
}
