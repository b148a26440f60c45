package contract

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/huangsam/githours/schema"
)

// commitPrefix marks the start of every record emitted by GetCommitLog.
const commitPrefix = "--"

// commitLogFormat emits one record per commit: hash, strict ISO author date, author email.
const commitLogFormat = "--pretty=format:" + commitPrefix + "%H|%aI|%aE"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// notRepositoryMarkers are the git messages that mean the path simply holds no
// repository. Any other non-zero exit is a real failure.
var notRepositoryMarkers = []string{
	"not a git repository",
	"cannot change to",
}

// isNotRepositoryMessage reports whether git's stderr says the path has no repository.
func isNotRepositoryMessage(stderr string) bool {
	for _, marker := range notRepositoryMarkers {
		if strings.Contains(stderr, marker) {
			return true
		}
	}
	return false
}

// IsRepository implements the GitClient interface.
// Failures other than "not a repository" (such as a safe.directory refusal)
// are returned as an AdapterError carrying git's message.
func (c *LocalGitClient) IsRepository(ctx context.Context, path string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", path, "rev-parse", "--is-inside-work-tree")
	cmd.Env = append(os.Environ(), "LC_ALL=C") // markers are matched in English
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if isNotRepositoryMessage(stderr) {
			return false, nil
		}
		return false, &AdapterError{Op: "check repository", Ref: path, Err: errors.New(stderr)}
	} else if err != nil {
		return false, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListLocalBranches implements the GitClient interface.
func (c *LocalGitClient) ListLocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, &AdapterError{Op: "list branches", Err: err}
	}
	branches := []string{}
	for line := range strings.Lines(string(out)) {
		if name := strings.TrimSpace(line); name != "" {
			branches = append(branches, name)
		}
	}
	return branches, nil
}

// GetCommitLog implements the GitClient interface.
func (c *LocalGitClient) GetCommitLog(ctx context.Context, repoPath string, branch string) ([]schema.Commit, error) {
	// A branch without commits (unborn HEAD) is not listed by for-each-ref,
	// so every branch here has at least one commit.
	out, err := c.Run(ctx, repoPath, "log", commitLogFormat, "refs/heads/"+branch)
	if err != nil {
		return nil, &AdapterError{Op: "read log", Ref: branch, Err: err}
	}
	commits, err := parseCommitLog(out)
	if err != nil {
		return nil, &AdapterError{Op: "parse log", Ref: branch, Err: err}
	}
	return commits, nil
}

// parseCommitLog narrows raw log output into commits.
func parseCommitLog(out []byte) ([]schema.Commit, error) {
	commits := []schema.Commit{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, commitPrefix) {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(line, commitPrefix), "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed log record %q", line)
		}
		date, err := time.Parse(time.RFC3339, parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid date in record %q: %w", line, err)
		}
		commits = append(commits, schema.Commit{
			Hash:        parts[0],
			Date:        date,
			AuthorEmail: parts[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commits, nil
}
