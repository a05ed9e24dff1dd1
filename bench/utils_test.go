package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/theflywheel/longmap"
	"github.com/theflywheel/longmap/internal/benchfmt"
)

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%.1fMB Sys=%.1fMB",
		float64(m.Alloc)/1024/1024,
		float64(m.Sys)/1024/1024)
}

// saveBenchmarkResult appends a result to benchmark_history/<resultsFile>
// in the repository root.
func saveBenchmarkResult(result benchfmt.Result, resultsFile string) error {
	currentDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get current directory")
	}

	// The benchmarks run from bench/, one level below the repository root
	repoRoot := filepath.Dir(currentDir)
	path := filepath.Join(repoRoot, "benchmark_history", resultsFile)

	return benchfmt.AppendResult(afero.NewOsFs(), path, repoRoot, result)
}

// runScaleBenchmark inserts numKeys keys, looks up a random sample, verifies
// every key in order, removes every other key and verifies the rest again.
// Its log lines are the ones benchfmt.Parse turns into metrics.
func runScaleBenchmark(b *testing.B, name string, numKeys, progressInterval int) {
	b.Logf("%s benchmark started execution, b.N = %d", name, b.N)

	// One pass is enough; the interesting numbers are the logged rates
	b.N = 1
	b.ResetTimer()
	b.StopTimer()

	m, err := longmap.New[int64]()
	if err != nil {
		b.Fatalf("Failed to create map: %v", err)
	}

	result := benchfmt.Result{
		Name:     name,
		Category: "scale",
		Metrics:  make(map[string]float64),
	}

	runtime.GC()

	b.Logf("Starting insertion of %d keys...", numKeys)
	b.StartTimer()
	writeStart := time.Now()

	for i := 0; i < numKeys; i++ {
		m.Put(int64(i), int64(i))

		if (i+1)%progressInterval == 0 {
			b.StopTimer()
			b.Logf("Inserted %d keys... (%.2f keys/sec)", i+1, float64(i+1)/time.Since(writeStart).Seconds())
			b.StartTimer()
		}
	}

	b.StopTimer()
	writeTime := time.Since(writeStart)
	insertionRate := float64(numKeys) / writeTime.Seconds()
	b.Logf("Time to insert %d keys: %v (%.2f keys/sec)", numKeys, writeTime, insertionRate)
	result.Metrics["insertion_rate"] = insertionRate

	randomSampleSize := numKeys / 10
	b.StartTimer()
	randomReadStart := time.Now()

	for i := 0; i < randomSampleSize; i++ {
		keyID := int64((i*31 + 17) % numKeys)
		v, found := m.Get(keyID)
		if !found {
			b.Fatalf("Random key %d not found", keyID)
		}
		if v != keyID {
			b.Fatalf("Value mismatch for random key %d: expected %d, got %d", keyID, keyID, v)
		}
	}

	b.StopTimer()
	randomReadTime := time.Since(randomReadStart)
	randomLookupRate := float64(randomSampleSize) / randomReadTime.Seconds()
	b.Logf("Time to perform %d random lookups: %v (%.2f lookups/sec)",
		randomSampleSize, randomReadTime, randomLookupRate)
	result.Metrics["random_lookup_rate"] = randomLookupRate

	b.StartTimer()
	seqReadStart := time.Now()

	for i := 0; i < numKeys; i++ {
		v, found := m.Get(int64(i))
		if !found {
			b.Fatalf("Key %d not found", i)
		}
		if v != int64(i) {
			b.Fatalf("Value mismatch for key %d: expected %d, got %d", i, i, v)
		}
	}

	b.StopTimer()
	seqReadTime := time.Since(seqReadStart)
	seqLookupRate := float64(numKeys) / seqReadTime.Seconds()
	b.Logf("Time to verify all %d keys sequentially: %v (%.2f lookups/sec)",
		numKeys, seqReadTime, seqLookupRate)
	result.Metrics["sequential_lookup_rate"] = seqLookupRate

	removed := numKeys / 2
	b.StartTimer()
	removeStart := time.Now()

	for i := 0; i < numKeys; i += 2 {
		if _, ok := m.Remove(int64(i)); !ok {
			b.Fatalf("Key %d could not be removed", i)
		}
	}

	b.StopTimer()
	removeTime := time.Since(removeStart)
	removalRate := float64(removed) / removeTime.Seconds()
	b.Logf("Time to remove %d keys: %v (%.2f keys/sec)", removed, removeTime, removalRate)
	result.Metrics["removal_rate"] = removalRate

	// Odd keys must have survived the removals
	for i := 1; i < numKeys; i += 2 {
		if !m.ContainsKey(int64(i)) {
			b.Fatalf("Key %d lost after removals", i)
		}
	}

	b.Logf("Final capacity for %d keys: %d slots", numKeys, m.Capacity())
	b.Logf("Average slots per key: %.2f", float64(m.Capacity())/float64(numKeys))
	b.Log(getMemoryUsage())

	result.Metrics["final_capacity"] = float64(m.Capacity())
	result.Metrics["slots_per_key"] = float64(m.Capacity()) / float64(numKeys)
	result.Metrics["ns_per_op"] = float64(writeTime.Nanoseconds()+randomReadTime.Nanoseconds()+
		seqReadTime.Nanoseconds()+removeTime.Nanoseconds()) / float64(numKeys)

	if err := saveBenchmarkResult(result, "latest.json"); err != nil {
		b.Logf("Failed to save benchmark result to latest.json: %v", err)
	}

	b.Logf("%s benchmark completed successfully", name)
}
