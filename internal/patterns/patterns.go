// Package patterns loads the pattern sets a benchmark is run with. Patterns
// come from a plain text file (one per line), a CSV column or a JSON
// document addressed by a gjson path. Every loader returns distinct
// patterns in first-seen order.
package patterns

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Format selects how a pattern file is parsed.
type Format string

const (
	FormatLines Format = "lines"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ErrEmpty is returned when a file yields no patterns.
var ErrEmpty = errors.New("no patterns found")

// ParseFormat validates a format name. An empty name means FormatLines.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatLines, nil
	case FormatLines, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported patterns format %q: use lines, csv or json", s)
	}
}

// Load reads patterns from path. field names the CSV column or the gjson
// path for JSON files and is ignored for line files.
func Load(path string, format Format, field string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open patterns file: %w", err)
	}

	var list []string
	switch format {
	case FormatLines, "":
		list, err = FromLines(data)
	case FormatCSV:
		list, err = FromCSV(data, field)
	case FormatJSON:
		list, err = FromJSON(data, field)
	default:
		return nil, fmt.Errorf("unsupported patterns format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return list, nil
}

// distinct drops repeats, keeping the first occurrence of each pattern.
func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
