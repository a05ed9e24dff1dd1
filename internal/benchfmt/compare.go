package benchfmt

import (
	"math"
	"sort"
	"strings"
)

// Compare matches the results of current against base by name and
// classifies every shared metric. Benchmarks missing from base are skipped.
// The returned comparisons are ordered worst first.
func Compare(base, current Summary, cfg Config) Comparison {
	baseResults := make(map[string]Result, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	out := Comparison{
		BaseCommit:           base.CommitID,
		CurrentCommit:        current.CommitID,
		BenchmarkComparisons: []BenchmarkComparison{},
	}

	for _, cur := range current.Results {
		prev, found := baseResults[cur.Name]
		if !found {
			continue
		}

		bc := compareResult(prev, cur, cfg)
		switch bc.OverallAssessment {
		case Regression:
			out.RegressionBenchmarks++
			out.SignificantRegressions++
		case Improvement:
			out.ImprovedBenchmarks++
		}
		out.BenchmarkComparisons = append(out.BenchmarkComparisons, bc)
	}

	// Regressions first, then by score, lowest (worst) first.
	sort.SliceStable(out.BenchmarkComparisons, func(i, j int) bool {
		a, b := out.BenchmarkComparisons[i], out.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})

	out.TotalBenchmarks = len(out.BenchmarkComparisons)
	return out
}

func compareResult(base, current Result, cfg Config) BenchmarkComparison {
	bc := BenchmarkComparison{
		Name:              current.Name,
		Category:          current.Category,
		MetricComparisons: []MetricComparison{},
	}

	names := make([]string, 0, len(current.Metrics))
	for name := range current.Metrics {
		if _, ok := base.Metrics[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	score := 0.0
	for _, name := range names {
		mc := compareMetric(name, base.Metrics[name], current.Metrics[name], cfg)
		if mc.IsRegression && mc.IsSignificant {
			bc.HasRegressions = true
		}
		if mc.IsImprovement {
			score += math.Abs(mc.PercentChange)
		} else if mc.IsRegression {
			score -= math.Abs(mc.PercentChange)
		}
		bc.MetricComparisons = append(bc.MetricComparisons, mc)
	}

	if len(names) > 0 {
		bc.Score = score / float64(len(names))
	}

	switch {
	case bc.HasRegressions:
		bc.OverallAssessment = Regression
	case bc.Score > 0:
		bc.OverallAssessment = Improvement
	default:
		bc.OverallAssessment = Neutral
	}
	return bc
}

func compareMetric(name string, base, current float64, cfg Config) MetricComparison {
	change := 0.0
	if base != 0 {
		change = (current - base) / base * 100
	}

	mc := MetricComparison{
		Name:          name,
		BaseValue:     base,
		CurrentValue:  current,
		PercentChange: change,
		IsSignificant: math.Abs(change) >= cfg.SignificanceThreshold,
	}
	if higherIsBetter(name, cfg.HigherIsBetter) {
		mc.IsRegression = change < 0
		mc.IsImprovement = change > 0
	} else {
		mc.IsRegression = change > 0
		mc.IsImprovement = change < 0
	}
	return mc
}

// higherIsBetter reports whether metric contains any of patterns. Metrics
// such as ns_per_op or bytes_per_op match none and improve by shrinking.
func higherIsBetter(metric string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(metric, p) {
			return true
		}
	}
	return false
}
