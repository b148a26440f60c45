// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/huangsam/githours/internal/contract"
)

// LogAnalysisHeader prints a short summary of what is being analyzed.
// Headers are diagnostics, so they go to the given writer (normally stderr).
func LogAnalysisHeader(w io.Writer, cfg *contract.Config) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	repoIcon, clockIcon := "", ""
	if cfg.UseEmojis {
		repoIcon, clockIcon = "🔎 ", "⏱️ "
	}

	// Line 1: The repository and backend
	_, _ = fmt.Fprintf(w, "%sRepo: %s (Backend: %s)\n", repoIcon, repoName, cfg.GitBackend)

	// Line 2: The session parameters in effect
	_, _ = fmt.Fprintf(w, "%sSession threshold: %v, first commit addition: %v\n",
		clockIcon, cfg.SessionThreshold, cfg.FirstCommitAddition)
}
