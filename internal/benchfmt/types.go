// Package benchfmt parses, stores and compares longmap benchmark results.
package benchfmt

// Result is one benchmark with all metrics collected for it.
type Result struct {
	Name     string             `json:"name"`
	Category string             `json:"category,omitempty"` // "standard" or "scale"
	Metrics  map[string]float64 `json:"metrics"`
}

// Summary is the set of results from one benchmark run.
type Summary struct {
	Timestamp  string   `json:"timestamp"`
	CommitID   string   `json:"commit_id"`
	Branch     string   `json:"branch"`
	GoVersion  string   `json:"go_version"`
	SystemInfo string   `json:"system_info,omitempty"`
	Results    []Result `json:"results"`
}

// MetricComparison compares one metric between two runs.
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
}

// Assessment values of a BenchmarkComparison.
const (
	Regression  = "REGRESSION"
	Improvement = "IMPROVEMENT"
	Neutral     = "NEUTRAL"
)

// BenchmarkComparison compares all shared metrics of one benchmark.
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	OverallAssessment string             `json:"overall_assessment"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
}

// Comparison is the outcome of comparing two summaries.
type Comparison struct {
	BaseCommit             string                `json:"base_commit"`
	CurrentCommit          string                `json:"current_commit"`
	TotalBenchmarks        int                   `json:"total_benchmarks"`
	ImprovedBenchmarks     int                   `json:"improved_benchmarks"`
	RegressionBenchmarks   int                   `json:"regression_benchmarks"`
	SignificantRegressions int                   `json:"significant_regressions"`
	BenchmarkComparisons   []BenchmarkComparison `json:"benchmark_comparisons"`
}

// Config tunes how summaries are compared.
type Config struct {
	// SignificanceThreshold is the absolute percent change from which a
	// metric change counts as significant.
	SignificanceThreshold float64 `json:"significance_threshold"`
	// HigherIsBetter lists substrings of metric names for which a larger
	// value is an improvement. Every other metric improves by shrinking.
	HigherIsBetter []string `json:"higher_is_better"`
	// Output is where the JSON comparison is written.
	Output string `json:"output"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		SignificanceThreshold: 5.0,
		HigherIsBetter: []string{
			"ops_per_sec", "operations", "insertion_rate", "lookup_rate",
			"removal_rate", "rate_", "max_", "throughput",
		},
		Output: "benchmark-comparison.json",
	}
}
