package patterns

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// FromCSV reads the named column of a CSV file whose first row is a
// header. An empty column name selects the first column.
func FromCSV(data []byte, column string) ([]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	header := rows[0]
	idx := 0
	if column != "" {
		idx = -1
		for i, name := range header {
			if name == column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("CSV column %q not found in header %v", column, header)
		}
	}

	list := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if row[idx] == "" {
			continue
		}
		list = append(list, row[idx])
	}
	return distinct(list), nil
}
