// Package main provides a performance benchmarking tool for the detective CLI.
// It generates synthetic Timeline exports of increasing size, then measures
// analyze runs straight from the file and from the SQLite segment store,
// treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - detective binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated exports and the benchmark store
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Geofence center used for every run.
const (
	centerLat = 41.0082
	centerLng = 28.9784
)

// BenchmarkResult holds the result of a benchmark run (file average, cold store run and average of warm store runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	FileTime string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	FileRuns      int
	StoreRuns     int
	Datasets      map[string]int
	Ordering      []string
	StorePath     string
	Granularities []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:   workDir,
		Timeout:   5 * time.Minute,
		FileRuns:  3,
		StoreRuns: 4,
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 25_000,
			"large":  250_000,
		},
		Ordering:      []string{"small", "medium", "large"},
		StorePath:     filepath.Join(workDir, "benchmark.db"),
		Granularities: []string{"day", "week", "month"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results, config)
}

// checkPrerequisites verifies that the detective binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("detective"); err != nil {
		return fmt.Errorf("detective binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across generated datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, file: %d runs, store: %d runs\n",
		len(config.Ordering), config.Timeout, config.FileRuns, config.StoreRuns)

	for _, name := range config.Ordering {
		size := config.Datasets[name]
		exportPath := filepath.Join(config.WorkDir, fmt.Sprintf("timeline_%s.json", name))
		fmt.Printf("Generating %s dataset (%d segments)\n", name, size)
		if err := generateExport(exportPath, size); err != nil {
			fmt.Printf("Warning: failed to generate %s: %v\n", exportPath, err)
			continue
		}

		// Replace whatever the store held with this dataset
		importCmd := exec.Command("detective", "store", "import", exportPath)
		importCmd.Env = storeEnv(config, "sqlite")
		if output, err := importCmd.CombinedOutput(); err != nil {
			fmt.Printf("Warning: failed to import %s: %v\nOutput: %s\n", name, err, string(output))
			continue
		}

		for _, g := range config.Granularities {
			results = append(results, runBenchmarkSuite(config, name, exportPath, g))
		}
	}

	return results
}

// runBenchmarkSuite runs both file and store benchmarks for one granularity
func runBenchmarkSuite(config BenchmarkConfig, dataset, exportPath, granularity string) BenchmarkResult {
	command := "analyze-" + granularity
	fmt.Printf("Running %s on %s\n", command, dataset)

	// Helper to run a benchmark phase
	runPhase := func(args []string, backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, args, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	baseArgs := []string{
		"analyze",
		"--lat", strconv.FormatFloat(centerLat, 'f', -1, 64),
		"--lng", strconv.FormatFloat(centerLng, 'f', -1, 64),
		"--granularity", granularity,
		"--timezone", "UTC",
		"--color", "no",
	}

	// Phase 1: read the export file every run
	_, fileAvg := runPhase(append([]string{exportPath}, baseArgs...), "none", config.FileRuns+1, "File")

	// Phase 2: read the stored import
	coldTime, warmAvg := runPhase(baseArgs, "sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  File average: %s, Cold time: %s, Warm average: %s\n", fileAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		FileTime: fileAvg,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a detective command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("detective", args...)
		cmd.Env = storeEnv(config, backend)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func storeEnv(config BenchmarkConfig, backend string) []string {
	return append(os.Environ(),
		"DETECTIVE_STORE_BACKEND="+backend,
		"DETECTIVE_STORE_DB_CONNECT="+config.StorePath,
	)
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "Total time:")
}

// generateExport writes a synthetic export with a mix of visits near and far
// from the benchmark center, plus activity and path segments.
func generateExport(path string, size int) error {
	rng := rand.New(rand.NewSource(int64(size)))
	start := time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC)

	segments := make([]map[string]any, 0, size)
	cursor := start
	for i := 0; i < size; i++ {
		duration := time.Duration(5+rng.Intn(240)) * time.Minute
		end := cursor.Add(duration)
		seg := map[string]any{
			"startTime": cursor.Format(time.RFC3339),
			"endTime":   end.Format(time.RFC3339),
		}
		switch i % 5 {
		case 3:
			seg["activity"] = map[string]any{"distanceMeters": rng.Float64() * 10_000}
		case 4:
			seg["timelinePath"] = []map[string]any{
				{"point": formatPoint(centerLat, centerLng), "time": cursor.Format(time.RFC3339)},
			}
		default:
			// Jitter up to roughly 2 km so some visits fall outside the radius
			lat := centerLat + (rng.Float64()-0.5)*0.04
			lng := centerLng + (rng.Float64()-0.5)*0.04
			seg["visit"] = map[string]any{
				"topCandidate": map[string]any{
					"placeLocation": map[string]any{"latLng": formatPoint(lat, lng)},
				},
			}
		}
		segments = append(segments, seg)
		cursor = end.Add(time.Duration(rng.Intn(120)) * time.Minute)
	}

	data, err := json.Marshal(map[string]any{"semanticSegments": segments})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func formatPoint(lat, lng float64) string {
	return fmt.Sprintf("%.7f°, %.7f°", lat, lng)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/detective_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "file_avg", "store_cold", "store_warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.FileTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult, config BenchmarkConfig) {
	fmt.Printf("Benchmark complete\n")
	for _, g := range config.Granularities {
		fmt.Printf("Analyze by %s:\n", g)
		for _, result := range results {
			if result.Command == "analyze-"+g {
				fmt.Printf("  %-8s: File: %s, Cold: %s, Warm: %s\n", result.Dataset, result.FileTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
