// Package main provides a performance benchmarking tool for the githours CLI.
// It measures the authors command across repositories of different sizes,
// once per Git backend, so the exec and gogit adapters can be compared.
//
// Prerequisites:
// - githours binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the averaged timing of one repository and backend.
type BenchmarkResult struct {
	Repository string
	Backend    string
	Runs       int
	AvgTime    string
	MinTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Workers   int
	Runs      int
	TestRepos []string
	Backends  []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:  os.Args[1],
		Timeout:   5 * time.Minute,
		Workers:   8,
		Runs:      3,
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
		Backends:  []string{"exec", "gogit"},
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

	printSummary(results)
}

// checkPrerequisites verifies that githours binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("githours"); err != nil {
		return fmt.Errorf("githours binary not found in PATH")
	}

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes every repository against every backend
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %d backends, %v timeout, %d workers, %d runs\n",
		len(config.TestRepos), len(config.Backends), config.Timeout, config.Workers, config.Runs)

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, backend := range config.Backends {
			fmt.Printf("Benchmarking %s with %s backend\n", repo, backend)
			results = append(results, runBenchmarkSuite(config, repo, repoPath, backend))
		}
	}

	return results
}

// runBenchmarkSuite runs one repository and backend several times and summarizes the timings
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, backend string) BenchmarkResult {
	result := BenchmarkResult{Repository: repo, Backend: backend, AvgTime: "TIMEOUT", MinTime: "TIMEOUT"}

	times := runBenchmark(config, repoPath, backend)
	result.Runs = len(times)
	if len(times) == 0 {
		return result
	}

	var sum float64
	best := times[0]
	for _, t := range times {
		sum += t
		best = min(best, t)
	}
	result.AvgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	result.MinTime = fmt.Sprintf("%.3fs", best)

	fmt.Printf("  Average: %s, Best: %s (%d/%d runs succeeded)\n", result.AvgTime, result.MinTime, len(times), config.Runs)
	return result
}

// runBenchmark executes githours authors repeatedly and returns the durations of successful runs
func runBenchmark(config BenchmarkConfig, repoPath, backend string) []float64 {
	args := []string{
		"authors",
		"--git-backend", backend,
		"--workers", strconv.Itoa(config.Workers),
		"--color", "no",
	}

	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()

		cmd := exec.CommandContext(ctx, "githours", args...)
		cmd.Dir = repoPath
		output, err := cmd.CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err == nil && isSuccess(output) {
			times = append(times, elapsed)
		}
	}
	return times
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/githours_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"repo", "backend", "runs", "avg", "best"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Backend, strconv.Itoa(result.Runs), result.AvgTime, result.MinTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by backend
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, backend := range []string{"exec", "gogit"} {
		fmt.Printf("Backend %s:\n", backend)
		for _, result := range results {
			if result.Backend == backend {
				fmt.Printf("  %-12s: Average: %s, Best: %s\n", result.Repository, result.AvgTime, result.MinTime)
			}
		}
	}
}
