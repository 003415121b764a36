package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/torosent/rxbench/internal/metrics"
)

// ErrUnsupportedShape is returned for metrics that do not have two or
// three axes.
var ErrUnsupportedShape = errors.New("only 2- and 3-axis metrics can be exported as CSV")

// WriteCSV writes each metric as one or more tables. A 2-axis metric
// becomes one table keyed by the first axis with a "<label> (Mean)" column
// per label of the second axis. A 3-axis metric becomes one such table per
// label of its first axis, titled "<metric> (<label>)". Means are in
// seconds; absent cells are left empty. Tables are separated by a blank
// line.
func WriteCSV(w io.Writer, ms []*metrics.Metric) error {
	for _, m := range ms {
		axes := m.Axes()
		switch len(axes) {
		case 2:
			if err := writeTable(w, m, m.Name(), axes[0], axes[1], nil); err != nil {
				return err
			}
		case 3:
			for _, label := range axes[0].Labels {
				title := fmt.Sprintf("%s (%s)", m.Name(), label)
				if err := writeTable(w, m, title, axes[1], axes[2], []string{label}); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("%w: metric %q has %d axes", ErrUnsupportedShape, m.Name(), len(axes))
		}
	}
	return nil
}

func writeTable(w io.Writer, m *metrics.Metric, title string, rows, cols metrics.Axis, prefix []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{title}); err != nil {
		return err
	}

	header := make([]string, 0, len(cols.Labels)+1)
	header = append(header, rows.Name)
	for _, c := range cols.Labels {
		header = append(header, c+" (Mean)")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows.Labels {
		record := make([]string, 0, len(cols.Labels)+1)
		record = append(record, r)
		for _, c := range cols.Labels {
			labels := append(append([]string(nil), prefix...), r, c)
			record = append(record, meanSeconds(m, labels))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func meanSeconds(m *metrics.Metric, labels []string) string {
	s, err := m.Lookup(labels...)
	if err != nil {
		return ""
	}
	mean, err := s.Mean()
	if err != nil {
		return ""
	}
	return strconv.FormatFloat(mean.Seconds(), 'g', -1, 64)
}
