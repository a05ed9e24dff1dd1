package main

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/theflywheel/longmap/internal/benchfmt"
)

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCommand(&app{fs: fs, out: &out, logger: zap.NewNop()})
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bench.txt", []byte(
		"BenchmarkPut-8   1000000   100.0 ns/op   16 B/op   1 allocs/op\n"), 0644))

	_, err := run(t, fs, "convert", "bench.txt", "--commit", "abc123", "--branch", "feature")
	require.NoError(t, err)

	s, err := benchfmt.LoadSummary(fs, "bench.json")
	require.NoError(t, err)
	assert.Equal(t, "abc123", s.CommitID)
	assert.Equal(t, "feature", s.Branch)
	require.Len(t, s.Results, 1)
	assert.Equal(t, "Put", s.Results[0].Name)
	assert.Equal(t, 100.0, s.Results[0].Metrics["ns_per_op"])
}

func TestConvertMissingInput(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "convert", "nope.txt")
	assert.ErrorContains(t, err, "read benchmark output")
}

func TestCompare(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := benchfmt.Summary{CommitID: "base", Results: []benchfmt.Result{
		{Name: "Get", Category: "standard", Metrics: map[string]float64{"ns_per_op": 50}},
	}}
	faster := benchfmt.Summary{CommitID: "faster", Results: []benchfmt.Result{
		{Name: "Get", Category: "standard", Metrics: map[string]float64{"ns_per_op": 40}},
	}}
	slower := benchfmt.Summary{CommitID: "slower", Results: []benchfmt.Result{
		{Name: "Get", Category: "standard", Metrics: map[string]float64{"ns_per_op": 60}},
	}}
	require.NoError(t, benchfmt.SaveSummary(fs, "base.json", base))
	require.NoError(t, benchfmt.SaveSummary(fs, "faster.json", faster))
	require.NoError(t, benchfmt.SaveSummary(fs, "slower.json", slower))

	out, err := run(t, fs, "compare", "base.json", "faster.json", "--out", "cmp.json")
	require.NoError(t, err)
	assert.Contains(t, out, "- Improvements: 1")

	saved, err := afero.ReadFile(fs, "cmp.json")
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"current_commit": "faster"`)

	out, err = run(t, fs, "compare", "base.json", "slower.json")
	require.Error(t, err)
	assert.Equal(t, errRegressions, errors.Cause(err))
	assert.Contains(t, out, "❌ Get (standard):")

	exists, err := afero.Exists(fs, benchfmt.DefaultConfig().Output)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCompareWithConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	base := benchfmt.Summary{Results: []benchfmt.Result{
		{Name: "Get", Metrics: map[string]float64{"ns_per_op": 100}},
	}}
	current := benchfmt.Summary{Results: []benchfmt.Result{
		{Name: "Get", Metrics: map[string]float64{"ns_per_op": 110}},
	}}
	require.NoError(t, benchfmt.SaveSummary(fs, "base.json", base))
	require.NoError(t, benchfmt.SaveSummary(fs, "current.json", current))
	require.NoError(t, afero.WriteFile(fs, "bench.jsonc", []byte(`{
		// tolerate noisy machines
		"significance_threshold": 25,
		"output": "out/cmp.json"
	}`), 0644))

	_, err := run(t, fs, "compare", "base.json", "current.json", "--config", "bench.jsonc")
	require.NoError(t, err, "a 10% slowdown is below the configured threshold")

	exists, err := afero.Exists(fs, "out/cmp.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCompareRequiresTwoFiles(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "compare", "base.json")
	assert.Error(t, err)
}
