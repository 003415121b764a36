package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/torosent/rxbench/internal/threshold"
)

// HTMLReportData contains all data needed for the HTML report template.
type HTMLReportData struct {
	GeneratedAt      string
	Report           Report
	Tables           []HTMLTable
	Cells            int
	ThresholdSummary *ThresholdSummary
	ChartJSON        string
}

// HTMLTable is one metric laid out as rows of cells.
type HTMLTable struct {
	Benchmark string
	Metric    string
	RowAxis   string
	Columns   []string
	Rows      []HTMLRow
	GeoMeans  []string
}

// HTMLRow is one row label and its rendered cells.
type HTMLRow struct {
	Label string
	Cells []HTMLCell
}

// HTMLCell is a rendered cell; empty cells have Present false.
type HTMLCell struct {
	Present bool
	Mean    string
	StdDev  string
	P99     string
	Count   int
}

// ThresholdSummary aggregates threshold outcomes for display.
type ThresholdSummary struct {
	Total   int
	Passed  int
	Failed  int
	Results []ThresholdResultJSON
}

// ThresholdResultJSON is a threshold outcome in display form.
type ThresholdResultJSON struct {
	Threshold string  `json:"threshold"`
	Metric    string  `json:"metric"`
	Engine    string  `json:"engine,omitempty"`
	Aggregate string  `json:"aggregate"`
	Operator  string  `json:"operator"`
	Expected  float64 `json:"expected"`
	Actual    float64 `json:"actual"`
	Cell      string  `json:"cell"`
	Pass      bool    `json:"pass"`
}

// chartSeries is the geomean of each engine for one metric, in ms.
type chartSeries struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// GenerateHTMLReport generates a standalone HTML report with embedded charts.
func GenerateHTMLReport(w io.Writer, report Report, thresholdResults []threshold.Result) error {
	var thresholdSummary *ThresholdSummary
	if len(thresholdResults) > 0 {
		thresholdSummary = &ThresholdSummary{
			Total:   len(thresholdResults),
			Results: make([]ThresholdResultJSON, len(thresholdResults)),
		}
		for i, tr := range thresholdResults {
			thresholdSummary.Results[i] = ThresholdResultJSON{
				Threshold: tr.Threshold.Raw,
				Metric:    tr.Threshold.Metric,
				Engine:    tr.Threshold.Engine,
				Aggregate: tr.Threshold.Aggregate,
				Operator:  tr.Threshold.Operator,
				Expected:  tr.Threshold.Value,
				Actual:    tr.Actual,
				Cell:      tr.Cell,
				Pass:      tr.Pass,
			}
			if tr.Pass {
				thresholdSummary.Passed++
			} else {
				thresholdSummary.Failed++
			}
		}
	}

	var (
		tables []HTMLTable
		charts []chartSeries
		cells  int
	)
	for _, b := range report.Benchmarks {
		for _, m := range b.Metrics {
			tables = append(tables, htmlTable(b.Name, m))
			cells += len(m.Cells)
			if len(m.GeoMeans) > 0 {
				series := chartSeries{Title: b.Name + ": " + m.Name}
				for _, g := range m.GeoMeans {
					series.Labels = append(series.Labels, g.Label)
					series.Values = append(series.Values, g.MeanMs)
				}
				charts = append(charts, series)
			}
		}
	}

	chartJSON, err := json.Marshal(charts)
	if err != nil {
		return fmt.Errorf("failed to marshal chart data: %w", err)
	}

	data := HTMLReportData{
		GeneratedAt:      report.GeneratedAt.Format(time.RFC3339),
		Report:           report,
		Tables:           tables,
		Cells:            cells,
		ThresholdSummary: thresholdSummary,
		ChartJSON:        string(chartJSON),
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"formatFloat": func(f float64) string {
			return fmt.Sprintf("%.3f", f)
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

func htmlTable(benchmark string, m MetricReport) HTMLTable {
	t := HTMLTable{Benchmark: benchmark, Metric: m.Name}
	if len(m.Axes) == 0 {
		return t
	}
	t.RowAxis = m.Axes[0].Name
	t.Columns = m.Axes[len(m.Axes)-1].Labels

	byRow := make(map[string]map[string]CellReport)
	var order []string
	for _, c := range m.Cells {
		var row string
		if n := len(c.Labels); n > 1 {
			row = strings.Join(c.Labels[:n-1], " / ")
		}
		if _, ok := byRow[row]; !ok {
			byRow[row] = make(map[string]CellReport)
			order = append(order, row)
		}
		byRow[row][c.Labels[len(c.Labels)-1]] = c
	}

	for _, label := range order {
		row := HTMLRow{Label: label}
		for _, col := range t.Columns {
			c, ok := byRow[label][col]
			if !ok {
				row.Cells = append(row.Cells, HTMLCell{})
				continue
			}
			row.Cells = append(row.Cells, HTMLCell{
				Present: true,
				Mean:    formatDuration(c.Mean),
				StdDev:  formatDuration(c.StdDev),
				P99:     formatDuration(c.P99),
				Count:   c.Count,
			})
		}
		t.Rows = append(t.Rows, row)
	}

	geo := make(map[string]time.Duration, len(m.GeoMeans))
	for _, g := range m.GeoMeans {
		geo[g.Label] = g.Mean
	}
	for _, col := range t.Columns {
		if d, ok := geo[col]; ok {
			t.GeoMeans = append(t.GeoMeans, formatDuration(d))
		} else {
			t.GeoMeans = append(t.GeoMeans, "-")
		}
	}
	return t
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>rxbench Report</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
            padding: 20px;
        }
        .container {
            max-width: 1400px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px 40px;
        }
        header h1 {
            font-size: 2rem;
            margin-bottom: 10px;
        }
        header .meta {
            opacity: 0.9;
            font-size: 0.9rem;
        }
        .content {
            padding: 40px;
        }
        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 40px;
        }
        .card {
            background: #f8f9fa;
            border-radius: 8px;
            padding: 20px;
            border-left: 4px solid #667eea;
        }
        .card h3 {
            font-size: 0.9rem;
            color: #6c757d;
            text-transform: uppercase;
            letter-spacing: 0.5px;
            margin-bottom: 10px;
        }
        .card .value {
            font-size: 2rem;
            font-weight: bold;
        }
        .card.success {
            border-left-color: #10b981;
        }
        .card.error {
            border-left-color: #ef4444;
        }
        .section {
            margin-bottom: 40px;
        }
        .section h2 {
            font-size: 1.5rem;
            margin-bottom: 20px;
            padding-bottom: 10px;
            border-bottom: 2px solid #e5e7eb;
        }
        .section h3 {
            font-size: 1.1rem;
            margin: 20px 0 10px;
            color: #4b5563;
        }
        .chart {
            width: 100%;
            height: 300px;
            margin-bottom: 30px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            background: white;
        }
        th, td {
            text-align: left;
            padding: 10px;
            border-bottom: 1px solid #e5e7eb;
            font-size: 0.9rem;
        }
        th {
            background: #f8f9fa;
            font-weight: 600;
            color: #4b5563;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        td.pattern {
            font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
            word-break: break-all;
        }
        td .sub {
            color: #6c757d;
            font-size: 0.8rem;
        }
        tr.geomean td {
            font-weight: 600;
            background: #f8f9fa;
        }
        .badge {
            display: inline-block;
            padding: 4px 12px;
            border-radius: 12px;
            font-size: 0.85rem;
            font-weight: 600;
        }
        .badge-success {
            background: #d1fae5;
            color: #065f46;
        }
        .badge-error {
            background: #fee2e2;
            color: #991b1b;
        }
    </style>
    <script src="https://cdn.jsdelivr.net/npm/uplot@1.6.24/dist/uPlot.iife.min.js"></script>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/uplot@1.6.24/dist/uPlot.min.css">
</head>
<body>
    <div class="container">
        <header>
            <h1>rxbench Report</h1>
            <div class="meta">Run: {{.Report.RunID}} | Generated: {{.GeneratedAt}}</div>
        </header>

        <div class="content">
            <div class="grid">
                <div class="card">
                    <h3>Benchmarks</h3>
                    <div class="value">{{len .Report.Benchmarks}}</div>
                </div>
                <div class="card">
                    <h3>Metrics</h3>
                    <div class="value">{{len .Tables}}</div>
                </div>
                <div class="card">
                    <h3>Cells</h3>
                    <div class="value">{{.Cells}}</div>
                </div>
                {{if .ThresholdSummary}}
                <div class="card {{if .ThresholdSummary.Failed}}error{{else}}success{{end}}">
                    <h3>Thresholds</h3>
                    <div class="value">{{.ThresholdSummary.Passed}}/{{.ThresholdSummary.Total}}</div>
                </div>
                {{end}}
            </div>

            <div class="section">
                <h2>Engine Geomeans (ms)</h2>
                <div id="charts"></div>
            </div>

            {{range .Tables}}
            <div class="section">
                <h2>{{.Benchmark}}: {{.Metric}}</h2>
                <table>
                    <thead>
                        <tr>
                            <th>{{.RowAxis}}</th>
                            {{range .Columns}}<th>{{.}}</th>{{end}}
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Rows}}
                        <tr>
                            <td class="pattern">{{.Label}}</td>
                            {{range .Cells}}
                            <td>{{if .Present}}{{.Mean}} ± {{.StdDev}}<div class="sub">p99 {{.P99}} · n={{.Count}}</div>{{else}}-{{end}}</td>
                            {{end}}
                        </tr>
                        {{end}}
                        <tr class="geomean">
                            <td>geomean</td>
                            {{range .GeoMeans}}<td>{{.}}</td>{{end}}
                        </tr>
                    </tbody>
                </table>
            </div>
            {{end}}

            {{if .ThresholdSummary}}
            <div class="section">
                <h2>Thresholds ({{.ThresholdSummary.Passed}}/{{.ThresholdSummary.Total}} Passed)</h2>
                <table>
                    <thead>
                        <tr>
                            <th>Threshold</th>
                            <th>Metric</th>
                            <th>Expected (ms)</th>
                            <th>Actual (ms)</th>
                            <th>Worst Cell</th>
                            <th>Status</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .ThresholdSummary.Results}}
                        <tr>
                            <td>{{.Threshold}}</td>
                            <td>{{.Metric}}{{if .Engine}}@{{.Engine}}{{end}} ({{.Aggregate}})</td>
                            <td>{{.Operator}} {{formatFloat .Expected}}</td>
                            <td>{{formatFloat .Actual}}</td>
                            <td class="pattern">{{.Cell}}</td>
                            <td>
                                {{if .Pass}}
                                <span class="badge badge-success">✓ PASS</span>
                                {{else}}
                                <span class="badge badge-error">✗ FAIL</span>
                                {{end}}
                            </td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
        </div>
    </div>

    <script>
        const charts = JSON.parse({{.ChartJSON}}) || [];
        const root = document.getElementById('charts');
        charts.forEach((c, i) => {
            const el = document.createElement('div');
            el.className = 'chart';
            root.appendChild(el);
            new uPlot({
                title: c.title,
                width: root.offsetWidth,
                height: 300,
                scales: { x: { time: false } },
                series: [
                    { label: "Engine", value: (u, v) => c.labels[v] ?? "" },
                    {
                        label: "Geomean (ms)",
                        stroke: "#667eea",
                        fill: "rgba(102, 126, 234, 0.3)",
                        paths: uPlot.paths.bars({ size: [0.6] }),
                        points: { show: false }
                    }
                ],
                axes: [
                    { values: (u, vals) => vals.map(v => c.labels[v] ?? "") },
                    { label: "ms" }
                ]
            }, [c.labels.map((_, j) => j), c.values], el);
        });
    </script>
</body>
</html>
`
