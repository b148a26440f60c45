// Package agg has retrieval and aggregation logic for commit history.
package agg

import (
	"context"
	"strings"

	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/schema"
	"golang.org/x/sync/errgroup"
)

// FetchBranchCommits retrieves the commit log of every branch concurrently,
// with at most workers retrievals in flight (workers <= 0 means unlimited).
// The returned slice holds one commit list per branch, in branch order.
// The first adapter failure cancels the remaining retrievals and is returned
// as is; no partial result is returned alongside an error.
func FetchBranchCommits(ctx context.Context, client contract.GitClient, repoPath string, branches []string, workers int) ([][]schema.Commit, error) {
	logs := make([][]schema.Commit, len(branches))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, branch := range branches {
		g.Go(func() error {
			// Each goroutine owns exactly one slot of logs.
			commits, err := client.GetCommitLog(gctx, repoPath, branch)
			if err != nil {
				return err
			}
			logs[i] = commits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return logs, nil
}

// DeduplicateCommits merges commit lists into one list that is unique by hash.
// The first occurrence of a hash wins and output follows first-seen order.
func DeduplicateCommits(lists [][]schema.Commit) []schema.Commit {
	capacity := 0
	for _, l := range lists {
		capacity = max(capacity, len(l))
	}

	// Use struct{} for zero-memory value.
	seen := make(map[string]struct{}, capacity)
	unique := make([]schema.Commit, 0, capacity)
	for _, l := range lists {
		for _, c := range l {
			if _, ok := seen[c.Hash]; ok {
				continue
			}
			seen[c.Hash] = struct{}{}
			unique = append(unique, c)
		}
	}
	return unique
}

// AuthorKey returns the grouping key for a commit author, mapping a missing
// identity to schema.UnknownAuthor.
func AuthorKey(email string) string {
	if strings.TrimSpace(email) == "" {
		return schema.UnknownAuthor
	}
	return email
}

// GroupByAuthor partitions commits by author identity. Every commit lands in
// exactly one group.
func GroupByAuthor(commits []schema.Commit) map[string][]schema.Commit {
	groups := make(map[string][]schema.Commit)
	for _, c := range commits {
		key := AuthorKey(c.AuthorEmail)
		groups[key] = append(groups[key], c)
	}
	return groups
}

// SumAuthorWorks adds up hours and commits across all authors.
func SumAuthorWorks(works []schema.AuthorWork) schema.TotalWork {
	var total schema.TotalWork
	for _, w := range works {
		total.Hours += w.Hours
		total.Commits += w.Commits
	}
	return total
}
