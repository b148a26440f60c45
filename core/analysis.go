package core

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/huangsam/githours/core/agg"
	"github.com/huangsam/githours/core/algo"
	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/internal/outwriter"
	"github.com/huangsam/githours/schema"
)

// runAnalysis performs branch discovery, retrieval, deduplication, grouping,
// estimation and aggregation. The returned report lists every author.
func runAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.Report, error) {
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		outwriter.LogAnalysisHeader(os.Stderr, cfg)
	}

	// --- 1. Branch Discovery ---
	branches, err := client.ListLocalBranches(ctx, cfg.RepoPath)
	if err != nil {
		return nil, err
	}
	branches = selectBranches(branches, cfg.Branches)

	// --- 2. Retrieval ---
	logs, err := agg.FetchBranchCommits(ctx, client, cfg.RepoPath, branches, cfg.Workers)
	if err != nil {
		return nil, err
	}

	// --- 3. Deduplication and Grouping ---
	commits := agg.DeduplicateCommits(logs)
	groups := agg.GroupByAuthor(commits)

	// --- 4. Estimation and Aggregation ---
	works := buildAuthorWorks(groups, cfg.EstimatorConfig())
	total := agg.SumAuthorWorks(works)

	return &schema.Report{
		RepoPath:                   cfg.RepoPath,
		Branches:                   branches,
		Authors:                    algo.RankAuthors(works, 0),
		Total:                      total,
		SessionThresholdMinutes:    cfg.SessionThreshold.Minutes(),
		FirstCommitAdditionMinutes: cfg.FirstCommitAddition.Minutes(),
	}, nil
}

// buildAuthorWorks estimates hours for every author group.
func buildAuthorWorks(groups map[string][]schema.Commit, est algo.EstimatorConfig) []schema.AuthorWork {
	works := make([]schema.AuthorWork, 0, len(groups))
	for email, commits := range groups {
		works = append(works, schema.AuthorWork{
			Email:   email,
			Hours:   algo.EstimateHours(commitDates(commits), est),
			Commits: len(commits),
		})
	}
	return works
}

// commitDates extracts the author timestamps of commits.
func commitDates(commits []schema.Commit) []time.Time {
	dates := make([]time.Time, len(commits))
	for i, c := range commits {
		dates[i] = c.Date
	}
	return dates
}

// selectBranches narrows the discovered branches to the allowlist, keeping
// discovery order. An empty allowlist selects every branch. Requested branches
// that do not exist are reported as a warning.
func selectBranches(discovered []string, allow []string) []string {
	if len(allow) == 0 {
		return discovered
	}
	selected := make([]string, 0, len(allow))
	for _, b := range discovered {
		if slices.Contains(allow, b) {
			selected = append(selected, b)
		}
	}
	for _, b := range allow {
		if !slices.Contains(discovered, b) {
			contract.LogWarn("Skipping branch", fmt.Errorf("no local branch named %q", b))
		}
	}
	return selected
}
