package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/githours/core/algo"
	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// commit builds a commit authored minutes after baseTime.
func commit(hash, email string, minutes int) schema.Commit {
	return schema.Commit{
		Hash:        hash,
		Date:        baseTime.Add(time.Duration(minutes) * time.Minute),
		AuthorEmail: email,
	}
}

// testConfig returns a validated-looking config for mock-driven runs.
func testConfig(modify func(*contract.Config)) *contract.Config {
	cfg := &contract.Config{
		RepoPath:            "/test/repo",
		SessionThreshold:    algo.DefaultSessionThreshold,
		FirstCommitAddition: algo.DefaultFirstCommitAddition,
		GitBackend:          schema.ExecBackend,
		Workers:             2,
		Output:              schema.JSONOut,
	}
	if modify != nil {
		modify(cfg)
	}
	return cfg
}

// newRepoMock programs a mock with the given branch logs.
func newRepoMock(logs map[string][]schema.Commit, order ...string) *contract.MockGitClient {
	m := &contract.MockGitClient{}
	m.On("ListLocalBranches", mock.Anything, "/test/repo").Return(order, nil)
	for branch, commits := range logs {
		m.On("GetCommitLog", mock.Anything, "/test/repo", branch).Return(commits, nil)
	}
	return m
}

func TestGetEstimateResults_SingleCommit(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {commit("a", "solo@x", 0)},
	}, "main")

	report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

	require.NoError(t, err)
	assert.Equal(t, []schema.AuthorWork{{Email: "solo@x", Hours: 0, Commits: 1}}, report.Authors)
	assert.Equal(t, schema.TotalWork{Hours: 0, Commits: 1}, report.Total)
	client.AssertExpectations(t)
}

func TestGetEstimateResults_SessionScenario(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {
			commit("d", "dev@x", 210),
			commit("c", "dev@x", 200),
			commit("b", "dev@x", 30),
			commit("a", "dev@x", 0),
		},
	}, "main")

	report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

	require.NoError(t, err)
	assert.Equal(t, schema.TotalWork{Hours: 3, Commits: 4}, report.Total)
}

func TestGetEstimateResults_DeduplicatesAcrossBranches(t *testing.T) {
	shared := []schema.Commit{commit("b", "bob@x", 30), commit("a", "alice@x", 0)}
	client := newRepoMock(map[string][]schema.Commit{
		"main":    shared,
		"feature": append([]schema.Commit{commit("c", "alice@x", 60)}, shared...),
	}, "feature", "main")

	report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

	require.NoError(t, err)
	assert.Equal(t, []string{"feature", "main"}, report.Branches)
	assert.Equal(t, []schema.AuthorWork{
		{Email: "alice@x", Hours: 1, Commits: 2},
		{Email: "bob@x", Hours: 0, Commits: 1},
	}, report.Authors)
	assert.Equal(t, schema.TotalWork{Hours: 1, Commits: 3}, report.Total)
	assert.Equal(t, 120.0, report.SessionThresholdMinutes)
	assert.Equal(t, 120.0, report.FirstCommitAdditionMinutes)
}

func TestGetEstimateResults_UnknownAuthor(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {commit("b", "", 45), commit("a", "  ", 0)},
	}, "main")

	report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

	require.NoError(t, err)
	require.Len(t, report.Authors, 1)
	assert.Equal(t, schema.AuthorWork{Email: schema.UnknownAuthor, Hours: 1, Commits: 2}, report.Authors[0])
}

func TestGetEstimateResults_EmptyRepository(t *testing.T) {
	client := newRepoMock(nil)

	report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

	require.NoError(t, err)
	assert.Empty(t, report.Authors)
	assert.Equal(t, schema.TotalWork{}, report.Total)
}

func TestGetEstimateResults_CustomEstimator(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {commit("b", "dev@x", 100), commit("a", "dev@x", 0)},
	}, "main")
	cfg := testConfig(func(c *contract.Config) {
		c.SessionThreshold = 60 * time.Minute
		c.FirstCommitAddition = 30 * time.Minute
	})

	report, _, err := GetEstimateResults(context.Background(), cfg, client)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Total.Hours) // blunt 30m rounds half-up
	assert.Equal(t, 60.0, report.SessionThresholdMinutes)
}

func TestGetEstimateResults_LimitKeepsFullTotal(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {
			commit("a", "a@x", 0), commit("b", "a@x", 60),
			commit("c", "b@x", 0), commit("d", "b@x", 30),
			commit("e", "c@x", 0),
		},
	}, "main")
	cfg := testConfig(func(c *contract.Config) { c.Limit = 1 })

	report, _, err := GetEstimateResults(context.Background(), cfg, client)

	require.NoError(t, err)
	require.Len(t, report.Authors, 1)
	assert.Equal(t, "a@x", report.Authors[0].Email)
	assert.Equal(t, schema.TotalWork{Hours: 2, Commits: 5}, report.Total)
}

func TestGetEstimateResults_BranchAllowlist(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("ListLocalBranches", mock.Anything, "/test/repo").Return([]string{"experiment", "main"}, nil)
	client.On("GetCommitLog", mock.Anything, "/test/repo", "main").Return([]schema.Commit{commit("a", "dev@x", 0)}, nil)
	cfg := testConfig(func(c *contract.Config) { c.Branches = []string{"main", "missing"} })

	report, _, err := GetEstimateResults(context.Background(), cfg, client)

	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, report.Branches)
	client.AssertNotCalled(t, "GetCommitLog", mock.Anything, "/test/repo", "experiment")
}

func TestGetEstimateResults_AdapterFailures(t *testing.T) {
	t.Run("branch listing", func(t *testing.T) {
		client := &contract.MockGitClient{}
		cause := &contract.AdapterError{Op: "list branches", Err: errors.New("corrupt refs")}
		client.On("ListLocalBranches", mock.Anything, "/test/repo").Return(nil, cause)

		report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

		assert.Nil(t, report)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("log retrieval", func(t *testing.T) {
		client := &contract.MockGitClient{}
		cause := &contract.AdapterError{Op: "read log", Ref: "main", Err: errors.New("bad object")}
		client.On("ListLocalBranches", mock.Anything, "/test/repo").Return([]string{"main"}, nil)
		client.On("GetCommitLog", mock.Anything, "/test/repo", "main").Return(nil, cause)

		report, _, err := GetEstimateResults(context.Background(), testConfig(nil), client)

		assert.Nil(t, report)
		var adapterErr *contract.AdapterError
		require.ErrorAs(t, err, &adapterErr)
		assert.Equal(t, "main", adapterErr.Ref)
	})
}

func TestExecuteTotal_JSONFile(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {commit("b", "dev@x", 30), commit("a", "dev@x", 0)},
	}, "main")
	out := filepath.Join(t.TempDir(), "total.json")
	cfg := testConfig(func(c *contract.Config) { c.OutputFile = out })

	require.NoError(t, ExecuteTotal(context.Background(), cfg, client))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var total schema.TotalWork
	require.NoError(t, json.Unmarshal(data, &total))
	assert.Equal(t, schema.TotalWork{Hours: 1, Commits: 2}, total)
}

func TestExecuteAuthors_CSVFile(t *testing.T) {
	client := newRepoMock(map[string][]schema.Commit{
		"main": {commit("c", "bob@x", 10), commit("b", "alice@x", 90), commit("a", "alice@x", 0)},
	}, "main")
	out := filepath.Join(t.TempDir(), "authors.csv")
	cfg := testConfig(func(c *contract.Config) {
		c.Output = schema.CSVOut
		c.OutputFile = out
	})

	require.NoError(t, ExecuteAuthors(context.Background(), cfg, client))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,email,hours,commits,share", lines[0])
	assert.Equal(t, "1,alice@x,2,2,1.0000", lines[1])
	assert.Equal(t, "2,bob@x,0,1,0.0000", lines[2])
}

func TestBuildAuthorWorks(t *testing.T) {
	groups := map[string][]schema.Commit{
		"a@x": {commit("1", "a@x", 0), commit("2", "a@x", 30)},
		"b@x": {commit("3", "b@x", 0)},
	}

	works := buildAuthorWorks(groups, algo.DefaultEstimatorConfig())

	assert.ElementsMatch(t, []schema.AuthorWork{
		{Email: "a@x", Hours: 1, Commits: 2},
		{Email: "b@x", Hours: 0, Commits: 1},
	}, works)
}

func TestSelectBranches(t *testing.T) {
	discovered := []string{"feature", "main", "release"}

	assert.Equal(t, discovered, selectBranches(discovered, nil))
	assert.Equal(t, []string{"main", "release"}, selectBranches(discovered, []string{"release", "main"}))
	assert.Empty(t, selectBranches(discovered, []string{"nope"}))
}
