package contract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/githours/schema"
)

// GoGitClient implements the GitClient interface in-process with go-git,
// so no git binary is needed on the machine.
type GoGitClient struct{}

var _ GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new instance of the go-git client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

// open resolves path to its enclosing repository, walking up to the nearest .git.
func (c *GoGitClient) open(path string) (*git.Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
}

// IsRepository implements the GitClient interface.
// Bare repositories have no working tree and are reported as false.
func (c *GoGitClient) IsRepository(_ context.Context, path string) (bool, error) {
	repo, err := c.open(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("open repository %q: %w", path, err)
	}
	if _, err := repo.Worktree(); errors.Is(err, git.ErrIsBareRepository) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := c.open(contextPath)
	if err != nil {
		return "", fmt.Errorf("open repository %q: %w", contextPath, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// ListLocalBranches implements the GitClient interface.
// Names are sorted to match the order of git for-each-ref.
func (c *GoGitClient) ListLocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, &AdapterError{Op: "list branches", Err: err}
	}
	iter, err := repo.Branches()
	if err != nil {
		return nil, &AdapterError{Op: "list branches", Err: err}
	}
	defer iter.Close()

	branches := []string{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		branches = append(branches, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, &AdapterError{Op: "list branches", Err: err}
	}
	slices.Sort(branches)
	return branches, nil
}

// GetCommitLog implements the GitClient interface.
func (c *GoGitClient) GetCommitLog(ctx context.Context, repoPath string, branch string) ([]schema.Commit, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, &AdapterError{Op: "read log", Ref: branch, Err: err}
	}
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, &AdapterError{Op: "read log", Ref: branch, Err: err}
	}
	iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, &AdapterError{Op: "read log", Ref: branch, Err: err}
	}
	defer iter.Close()

	commits := []schema.Commit{}
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, schema.Commit{
			Hash:        c.Hash.String(),
			Date:        c.Author.When,
			AuthorEmail: c.Author.Email,
		})
		return nil
	})
	if err != nil {
		return nil, &AdapterError{Op: "read log", Ref: branch, Err: err}
	}
	return commits, nil
}
