// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/githours/schema"
)

// GitClient defines the repository operations needed to estimate work.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Repository Detection ---

	// IsRepository reports whether path is inside a Git working tree.
	// An error is returned only when the check itself could not run.
	IsRepository(ctx context.Context, path string) (bool, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// --- History ---

	// ListLocalBranches returns the short names of all local branches.
	ListLocalBranches(ctx context.Context, repoPath string) ([]string, error)

	// GetCommitLog returns every commit reachable from the given local branch.
	GetCommitLog(ctx context.Context, repoPath string, branch string) ([]schema.Commit, error)
}
