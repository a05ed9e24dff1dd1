package benchfmt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	stdBenchRegex    = regexp.MustCompile(`^Benchmark(\w+)(?:-\d+)?\s+(\d+)\s+(\d+\.?\d*)\s+ns/op(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`)
	benchHeaderRegex = regexp.MustCompile(`^--- BENCH: Benchmark(\w+)(?:-\d+)?\s*$`)
	sysInfoRegex     = regexp.MustCompile(`goos:[^\n]*\ngoarch:[^\n]*`)
	goVersionRegex   = regexp.MustCompile(`go\d+\.\d+(?:\.\d+)?`)
)

// scaleBenchmarks report their own rates through log lines, so ops_per_sec
// is meaningless for them.
var scaleBenchmarks = map[string]bool{
	"TenThousandKeys": true,
	"MillionKeys":     true,
}

// Log lines written by the scale benchmarks, each yielding one metric of
// the benchmark they are logged under.
var linePatterns = []struct {
	regex  *regexp.Regexp
	metric string
}{
	{regexp.MustCompile(`Time to insert \d+ keys: [^(]+\(([\d,.]+) keys/sec\)`), "insertion_rate"},
	{regexp.MustCompile(`Time to perform \d+ random lookups: [^(]+\(([\d,.]+) lookups/sec\)`), "random_lookup_rate"},
	{regexp.MustCompile(`Time to verify all \d+ keys sequentially: [^(]+\(([\d,.]+) lookups/sec\)`), "sequential_lookup_rate"},
	{regexp.MustCompile(`Time to remove \d+ keys: [^(]+\(([\d,.]+) keys/sec\)`), "removal_rate"},
	{regexp.MustCompile(`Final capacity for \d+ keys: ([\d,]+) slots`), "final_capacity"},
	{regexp.MustCompile(`Average slots per key: ([\d,.]+)`), "slots_per_key"},
	{regexp.MustCompile(`Alloc=([\d,.]+)MB`), "memory_alloc_mb"},
}

// Parse extracts benchmark results from `go test -bench` output. Standard
// result lines give ns/op, B/op and allocs/op; log lines under a
// "--- BENCH:" header add scale metrics to that benchmark. CommitID and
// Branch are left for the caller to fill in.
func Parse(content string) Summary {
	summary := Summary{
		Timestamp: time.Now().Format(time.RFC3339),
		Results:   []Result{},
	}

	if m := sysInfoRegex.FindString(content); m != "" {
		summary.SystemInfo = strings.TrimSpace(m)
	}
	if m := goVersionRegex.FindString(content); m != "" {
		summary.GoVersion = m
	}

	byName := make(map[string]int)
	lookup := func(name string) *Result {
		if i, ok := byName[name]; ok {
			return &summary.Results[i]
		}
		category := "standard"
		if scaleBenchmarks[name] {
			category = "scale"
		}
		summary.Results = append(summary.Results, Result{
			Name:     name,
			Category: category,
			Metrics:  make(map[string]float64),
		})
		byName[name] = len(summary.Results) - 1
		return &summary.Results[len(summary.Results)-1]
	}

	current := ""
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if matches := stdBenchRegex.FindStringSubmatch(trimmed); matches != nil {
			current = matches[1]
			addStandardMetrics(lookup(current), matches)
			continue
		}
		if matches := benchHeaderRegex.FindStringSubmatch(trimmed); matches != nil {
			current = matches[1]
			continue
		}
		if current == "" {
			continue
		}

		for _, p := range linePatterns {
			matches := p.regex.FindStringSubmatch(trimmed)
			if matches == nil {
				continue
			}
			if value, ok := parseNumber(matches[1]); ok {
				lookup(current).Metrics[p.metric] = value
			}
		}
	}

	return summary
}

func addStandardMetrics(r *Result, matches []string) {
	ops, _ := strconv.Atoi(matches[2])
	nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

	r.Metrics["operations"] = float64(ops)
	r.Metrics["ns_per_op"] = nsPerOp

	if r.Category != "scale" && nsPerOp > 0 {
		r.Metrics["ops_per_sec"] = 1_000_000_000 / nsPerOp
	}
	if matches[4] != "" {
		bytesPerOp, _ := strconv.Atoi(matches[4])
		r.Metrics["bytes_per_op"] = float64(bytesPerOp)
	}
	if matches[5] != "" {
		allocsPerOp, _ := strconv.Atoi(matches[5])
		r.Metrics["allocs_per_op"] = float64(allocsPerOp)
	}
}

// parseNumber converts a value like "1,234.5" to a float.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v, err == nil
}
