package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
)

// WriteReport writes a human-readable version of c to w, most affected
// benchmarks and metrics first.
func WriteReport(w io.Writer, c Comparison) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Benchmark Comparison: %s vs %s\n\n",
		truncate(c.BaseCommit, 8), truncate(c.CurrentCommit, 8))

	fmt.Fprintf(bw, "Summary:\n")
	fmt.Fprintf(bw, "- Total benchmarks compared: %d\n", c.TotalBenchmarks)
	fmt.Fprintf(bw, "- Improvements: %d\n", c.ImprovedBenchmarks)
	fmt.Fprintf(bw, "- Regressions: %d (significant: %d)\n\n",
		c.RegressionBenchmarks, c.SignificantRegressions)

	if c.TotalBenchmarks == 0 {
		fmt.Fprintln(bw, "No matching benchmarks found for comparison")
		return bw.Flush()
	}

	fmt.Fprintln(bw, "Benchmark Details (sorted by impact):")
	fmt.Fprintln(bw, "======================================")

	for _, bc := range c.BenchmarkComparisons {
		indicator := "✅"
		switch {
		case bc.HasRegressions:
			indicator = "❌"
		case bc.Score < 0:
			indicator = "⚠️"
		case bc.Score == 0:
			indicator = "⏺"
		}

		fmt.Fprintf(bw, "\n%s %s (%s):\n", indicator, bc.Name, bc.Category)

		metrics := append([]MetricComparison(nil), bc.MetricComparisons...)
		sort.SliceStable(metrics, func(i, j int) bool {
			return math.Abs(metrics[i].PercentChange) > math.Abs(metrics[j].PercentChange)
		})

		for _, m := range metrics {
			if m.PercentChange == 0 {
				continue
			}

			marker := " "
			if m.IsRegression && m.IsSignificant {
				marker = "▼"
			} else if m.IsImprovement && m.IsSignificant {
				marker = "▲"
			}

			fmt.Fprintf(bw, "  %s %-22s: %+8.2f%% (%g → %g)\n",
				marker, m.Name, m.PercentChange, m.BaseValue, m.CurrentValue)
		}
	}

	return bw.Flush()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
