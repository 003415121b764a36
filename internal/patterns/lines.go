package patterns

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

const maxLine = 1 << 20

// FromLines returns one pattern per non-empty line. Leading and trailing
// spaces are kept; only line terminators are stripped.
func FromLines(data []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var list []string
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return distinct(list), nil
}
