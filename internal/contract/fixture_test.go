package contract

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixtureCommit describes one empty commit to create in a fixture repository.
type fixtureCommit struct {
	email string
	date  string // ISO 8601
}

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// runGit runs git inside dir with a deterministic identity and date.
func runGit(t *testing.T, dir string, date string, email string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir, "-c", "commit.gpgsign=false"}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Fixture",
		"GIT_AUTHOR_EMAIL="+email,
		"GIT_AUTHOR_DATE="+date,
		"GIT_COMMITTER_NAME=Fixture",
		"GIT_COMMITTER_EMAIL="+email,
		"GIT_COMMITTER_DATE="+date,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

// commitAll appends empty commits to the currently checked out branch.
func commitAll(t *testing.T, dir string, commits ...fixtureCommit) {
	t.Helper()
	for _, c := range commits {
		runGit(t, dir, c.date, c.email, "commit", "--allow-empty", "-q", "-m", "work at "+c.date)
	}
}

// newFixtureRepo builds a repository with a main branch of two commits and a
// feature branch that adds one commit on top of main.
func newFixtureRepo(t *testing.T) string {
	t.Helper()
	skipIfGitNotAvailable(t)

	dir := t.TempDir()
	runGit(t, dir, "", "", "init", "-q")
	runGit(t, dir, "", "", "symbolic-ref", "HEAD", "refs/heads/main")

	commitAll(t, dir,
		fixtureCommit{"alice@example.com", "2024-03-01T09:00:00+00:00"},
		fixtureCommit{"bob@example.com", "2024-03-01T09:30:00+00:00"},
	)
	runGit(t, dir, "", "", "checkout", "-q", "-b", "feature")
	commitAll(t, dir, fixtureCommit{"alice@example.com", "2024-03-01T10:00:00+02:00"})
	runGit(t, dir, "", "", "checkout", "-q", "main")

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested", "deeper"), 0o755))
	return dir
}

// realPath resolves symlinks so temp paths compare equal across platforms.
func realPath(t *testing.T, p string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return resolved
}
