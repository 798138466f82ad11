package pipeline

import (
	"fmt"
	"os"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// RatioChart renders the per-file compression ratios as an SVG bar
// chart, one bar per source file in name order.
func RatioChart(results map[string]CompressResult, path string) error {
	names := make([]string, 0, len(results))
	for name := range results {
		if results[name].Error == "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no compressed files to chart")
	}
	sort.Strings(names)

	bars := make([]chart.Value, 0, len(names))
	for _, name := range names {
		bars = append(bars, chart.Value{
			Label: name,
			Value: results[name].Ratio * 100,
		})
	}

	graph := chart.BarChart{
		Title:    "compressed size, % of original",
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return graph.Render(chart.SVG, fh)
}
