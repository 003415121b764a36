package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/torosent/rxbench/internal/threshold"
)

// PrintReport outputs a human-readable table per metric: one row per label
// tuple of the leading axes, one "mean ± stddev" column per label of the
// last axis, and a geomean row.
func PrintReport(w io.Writer, report Report) {
	for _, b := range report.Benchmarks {
		fmt.Fprintf(w, "\n--- Benchmark: %s ---\n", b.Name)
		for _, m := range b.Metrics {
			fmt.Fprintf(w, "\n%s\n", m.Name)
			printMetricTable(w, m)
		}
	}
}

func printMetricTable(w io.Writer, m MetricReport) {
	if len(m.Axes) == 0 {
		return
	}
	columns := m.Axes[len(m.Axes)-1].Labels
	rowAxes := m.Axes[:len(m.Axes)-1]

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(rowAxes)+len(columns))
	for _, a := range rowAxes {
		header = append(header, a.Name)
	}
	header = append(header, columns...)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	rows := make(map[string]map[string]CellReport)
	var order []string
	for _, c := range m.Cells {
		key := strings.Join(c.Labels[:len(c.Labels)-1], "\t")
		if _, ok := rows[key]; !ok {
			rows[key] = make(map[string]CellReport)
			order = append(order, key)
		}
		rows[key][c.Labels[len(c.Labels)-1]] = c
	}

	for _, key := range order {
		var line []string
		if len(rowAxes) > 0 {
			line = append(line, key)
		}
		for _, col := range columns {
			c, ok := rows[key][col]
			if !ok {
				line = append(line, "-")
				continue
			}
			line = append(line, fmt.Sprintf("%s ± %s", formatDuration(c.Mean), formatDuration(c.StdDev)))
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}

	if len(m.GeoMeans) > 0 {
		geo := make(map[string]time.Duration, len(m.GeoMeans))
		for _, g := range m.GeoMeans {
			geo[g.Label] = g.Mean
		}
		var line []string
		if len(rowAxes) > 0 {
			line = append(line, "[geomean]"+strings.Repeat("\t", len(rowAxes)-1))
		}
		for _, col := range columns {
			if d, ok := geo[col]; ok {
				line = append(line, formatDuration(d))
			} else {
				line = append(line, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	tw.Flush()
}

// PrintThresholdResults prints one line per evaluated threshold.
func PrintThresholdResults(w io.Writer, results []threshold.Result) {
	if len(results) == 0 {
		return
	}
	passed := 0
	for _, r := range results {
		if r.Pass {
			passed++
		}
	}
	fmt.Fprintf(w, "\n--- Thresholds (%d/%d passed) ---\n", passed, len(results))
	for _, r := range results {
		fmt.Fprintln(w, r.Message)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}
