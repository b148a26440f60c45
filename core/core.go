// Package core has core logic for estimating work from commit history.
package core

import (
	"context"
	"time"

	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/internal/outwriter"
	"github.com/huangsam/githours/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.GitClient) error

// GetEstimateResults runs the full estimate and returns the report with
// authors ranked and cut to cfg.Limit (0 keeps everyone). The total always
// covers every author.
func GetEstimateResults(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.Report, time.Duration, error) {
	start := time.Now()
	report, err := runAnalysis(ctx, cfg, client)
	if err != nil {
		return nil, 0, err
	}
	if cfg.Limit > 0 && len(report.Authors) > cfg.Limit {
		report.Authors = report.Authors[:cfg.Limit]
	}
	return report, time.Since(start), nil
}

// ExecuteTotal estimates the repository total and writes it.
// It serves as the main entry point for the root command.
func ExecuteTotal(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	report, _, err := GetEstimateResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	return outwriter.WriteTotal(report, cfg)
}

// ExecuteAuthors estimates every author and writes the ranked breakdown.
// It serves as the main entry point for the 'authors' mode.
func ExecuteAuthors(ctx context.Context, cfg *contract.Config, client contract.GitClient) error {
	report, duration, err := GetEstimateResults(ctx, cfg, client)
	if err != nil {
		return err
	}
	return outwriter.WriteAuthors(report, cfg, duration)
}
