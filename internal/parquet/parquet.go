// Package parquet provides data structures and functions for exporting githours
// estimates to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/githours/schema"
	"github.com/parquet-go/parquet-go"
)

// AuthorWorkRow represents the estimate for a single author in one run.
type AuthorWorkRow struct {
	// RepoPath is the absolute path of the analyzed repository
	RepoPath string `parquet:"repo_path,snappy"`

	// AnalysisTime is when the estimate was produced
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// Rank is the 1-based position of the author by hours
	Rank int32 `parquet:"rank,snappy"`

	// Email is the author identity ("unknown" when missing)
	Email string `parquet:"email,snappy"`

	// Hours is the estimated number of hours worked
	Hours int64 `parquet:"hours,snappy"`

	// Commits is the number of distinct commits by the author
	Commits int64 `parquet:"commits,snappy"`

	// Share is the fraction of total hours attributed to the author
	Share float64 `parquet:"share,snappy"`
}

// TotalWorkRow represents the repository-wide totals of one run.
type TotalWorkRow struct {
	RepoPath                   string    `parquet:"repo_path,snappy"`
	AnalysisTime               time.Time `parquet:"analysis_time,snappy"`
	Hours                      int64     `parquet:"hours,snappy"`
	Commits                    int64     `parquet:"commits,snappy"`
	Authors                    int32     `parquet:"authors,snappy"`
	Branches                   int32     `parquet:"branches,snappy"`
	SessionThresholdMinutes    float64   `parquet:"session_threshold_minutes,snappy"`
	FirstCommitAdditionMinutes float64   `parquet:"first_commit_addition_minutes,snappy"`
}

// AuthorRows flattens the ranked authors of a report into rows.
func AuthorRows(report *schema.Report, at time.Time) []AuthorWorkRow {
	rows := make([]AuthorWorkRow, len(report.Authors))
	for i, a := range report.Authors {
		rows[i] = AuthorWorkRow{
			RepoPath:     report.RepoPath,
			AnalysisTime: at,
			Rank:         int32(i + 1),
			Email:        a.Email,
			Hours:        int64(a.Hours),
			Commits:      int64(a.Commits),
			Share:        a.Share(report.Total),
		}
	}
	return rows
}

// TotalRow summarizes a report into a single row.
func TotalRow(report *schema.Report, at time.Time) TotalWorkRow {
	return TotalWorkRow{
		RepoPath:                   report.RepoPath,
		AnalysisTime:               at,
		Hours:                      int64(report.Total.Hours),
		Commits:                    int64(report.Total.Commits),
		Authors:                    int32(len(report.Authors)),
		Branches:                   int32(len(report.Branches)),
		SessionThresholdMinutes:    report.SessionThresholdMinutes,
		FirstCommitAdditionMinutes: report.FirstCommitAdditionMinutes,
	}
}

// WriteAuthorWorksParquet writes a slice of AuthorWorkRow structs to a Parquet file.
func WriteAuthorWorksParquet(data []AuthorWorkRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteTotalWorkParquet writes a slice of TotalWorkRow structs to a Parquet file.
func WriteTotalWorkParquet(data []TotalWorkRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes rows of any struct type to outputPath, inferring the schema
// from the struct tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// The footer is written on Close, so its error matters.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
