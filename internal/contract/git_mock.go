package contract

import (
	"context"

	"github.com/huangsam/githours/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// IsRepository implements the GitClient interface.
func (m *MockGitClient) IsRepository(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	args := m.Called(ctx, contextPath)
	return args.String(0), args.Error(1)
}

// ListLocalBranches implements the GitClient interface.
func (m *MockGitClient) ListLocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	args := m.Called(ctx, repoPath)
	branches, _ := args.Get(0).([]string)
	return branches, args.Error(1)
}

// GetCommitLog implements the GitClient interface.
func (m *MockGitClient) GetCommitLog(ctx context.Context, repoPath string, branch string) ([]schema.Commit, error) {
	args := m.Called(ctx, repoPath, branch)
	commits, _ := args.Get(0).([]schema.Commit)
	return commits, args.Error(1)
}
