package output

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"unicode"

	"golang.org/x/perf/benchfmt"

	"github.com/torosent/rxbench/internal/bench"
)

// WriteBenchfmt writes every observation in the Go benchmark format so runs
// can be compared with benchstat. Each observation becomes one result line
// named Regex/suite=<benchmark>/section=<metric>/pattern=<n>/engine=<name>;
// pattern numbers are resolved by "pattern-<n>:" configuration lines.
func WriteBenchfmt(w io.Writer, runID string, benchmarks []*bench.Benchmark) error {
	if _, err := fmt.Fprintf(w, "goos: %s\ngoarch: %s\npkg: github.com/torosent/rxbench\nrunid: %s\n",
		runtime.GOOS, runtime.GOARCH, runID); err != nil {
		return err
	}

	bw := benchfmt.NewWriter(w)
	res := &benchfmt.Result{Iters: 1}
	procs := runtime.GOMAXPROCS(0)

	for _, b := range benchmarks {
		ms, err := b.Metrics()
		if err != nil {
			return fmt.Errorf("benchmark %q: %w", b.Name, err)
		}
		index := make(map[string]int, len(b.Patterns))
		for i, p := range b.Patterns {
			index[p] = i + 1
			if _, err := fmt.Fprintf(w, "pattern-%d: %s\n", i+1, configValue(p)); err != nil {
				return err
			}
		}

		for _, m := range ms {
			for _, cell := range m.Cells() {
				pattern, engine := cell.Labels[0], cell.Labels[len(cell.Labels)-1]
				name := fmt.Sprintf("Regex/suite=%s/section=%s/pattern=%d/engine=%s-%d",
					nameValue(b.Name), nameValue(m.Name()), index[pattern], nameValue(engine), procs)
				res.Name = append(res.Name[:0], name...)
				for _, d := range cell.Sample.Observations() {
					res.Values = append(res.Values[:0], benchfmt.Value{Value: float64(d.Nanoseconds()), Unit: "ns/op"})
					if err := bw.Write(res); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// nameValue makes s safe inside a benchmark name, which ends at the first
// space and uses '/' to separate sub-benchmarks.
func nameValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}

// configValue keeps a configuration value on a single line.
func configValue(s string) string {
	return strings.NewReplacer("\r", `\r`, "\n", `\n`).Replace(s)
}
