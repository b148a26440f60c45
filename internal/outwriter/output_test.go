package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/githours/internal/contract"
	"github.com/huangsam/githours/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *schema.Report {
	return &schema.Report{
		RepoPath: "/tmp/repo",
		Branches: []string{"feature", "main"},
		Authors: []schema.AuthorWork{
			{Email: "bob@example.com", Hours: 3, Commits: 5},
			{Email: "alice@example.com", Hours: 1, Commits: 2},
		},
		Total:                      schema.TotalWork{Hours: 4, Commits: 7},
		SessionThresholdMinutes:    120,
		FirstCommitAdditionMinutes: 120,
	}
}

func fileConfig(t *testing.T, output schema.OutputMode, name string) *contract.Config {
	t.Helper()
	return &contract.Config{
		Output:     output,
		OutputFile: filepath.Join(t.TempDir(), name),
		Workers:    2,
		Width:      120,
	}
}

func TestWriteTotalText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTotalText(&buf, schema.TotalWork{Hours: 12, Commits: 7}))
	assert.Equal(t, "{ hours: 12, commits: 7 }\n", buf.String())
}

func TestWriteTotal_Formats(t *testing.T) {
	report := sampleReport()

	t.Run("text", func(t *testing.T) {
		cfg := fileConfig(t, schema.TextOut, "total.txt")
		require.NoError(t, WriteTotal(report, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, "{ hours: 4, commits: 7 }\n", string(content))
	})

	t.Run("json", func(t *testing.T) {
		cfg := fileConfig(t, schema.JSONOut, "total.json")
		require.NoError(t, WriteTotal(report, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var total schema.TotalWork
		require.NoError(t, json.Unmarshal(content, &total))
		assert.Equal(t, report.Total, total)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := fileConfig(t, schema.CSVOut, "total.csv")
		require.NoError(t, WriteTotal(report, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, "hours,commits\n4,7\n", string(content))
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := fileConfig(t, schema.YAMLOut, "total.yaml")
		require.NoError(t, WriteTotal(report, cfg))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var total schema.TotalWork
		require.NoError(t, yaml.Unmarshal(content, &total))
		assert.Equal(t, report.Total, total)
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := fileConfig(t, schema.ParquetOut, "total.parquet")
		require.NoError(t, WriteTotal(report, cfg))
		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("unwritable file", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.JSONOut, OutputFile: filepath.Join(t.TempDir(), "missing", "total.json")}
		err := WriteTotal(report, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error writing JSON output")
	})
}

func TestWriteAuthors_Formats(t *testing.T) {
	report := sampleReport()

	t.Run("json", func(t *testing.T) {
		cfg := fileConfig(t, schema.JSONOut, "authors.json")
		require.NoError(t, WriteAuthors(report, cfg, time.Second))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var decoded schema.Report
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, *report, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := fileConfig(t, schema.YAMLOut, "authors.yaml")
		require.NoError(t, WriteAuthors(report, cfg, time.Second))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)

		var decoded schema.Report
		require.NoError(t, yaml.Unmarshal(content, &decoded))
		assert.Equal(t, report.Authors, decoded.Authors)
		assert.Equal(t, report.Total, decoded.Total)
	})

	t.Run("csv", func(t *testing.T) {
		cfg := fileConfig(t, schema.CSVOut, "authors.csv")
		require.NoError(t, WriteAuthors(report, cfg, time.Second))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Equal(t,
			"rank,email,hours,commits,share\n"+
				"1,bob@example.com,3,5,0.7500\n"+
				"2,alice@example.com,1,2,0.2500\n",
			string(content))
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := fileConfig(t, schema.ParquetOut, "authors.parquet")
		require.NoError(t, WriteAuthors(report, cfg, time.Second))
		info, err := os.Stat(cfg.OutputFile)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("table to file", func(t *testing.T) {
		cfg := fileConfig(t, schema.TextOut, "authors.txt")
		require.NoError(t, WriteAuthors(report, cfg, time.Second))
		content, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "bob@example.com")
	})
}

func TestWriteAuthorTable(t *testing.T) {
	report := sampleReport()
	cfg := &contract.Config{Workers: 4, Width: 120}

	var buf bytes.Buffer
	require.NoError(t, writeAuthorTable(&buf, report, cfg, 250*time.Millisecond))
	out := buf.String()

	assert.Contains(t, strings.ToUpper(out), "AUTHOR")
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "Total: 4 hours across 7 commits (2 authors, 2 branches)")
	assert.Contains(t, out, "Analysis completed in 250ms with 4 workers")
	assert.Less(t, strings.Index(out, "bob@example.com"), strings.Index(out, "alice@example.com"),
		"Authors should keep their ranked order")
}

func TestWriteAuthorTable_TruncatesLongIdentity(t *testing.T) {
	long := strings.Repeat("a", 80) + "@example.com"
	report := &schema.Report{
		Authors: []schema.AuthorWork{{Email: long, Hours: 1, Commits: 1}},
		Total:   schema.TotalWork{Hours: 1, Commits: 1},
	}
	cfg := &contract.Config{Workers: 1, Width: 60}

	var buf bytes.Buffer
	require.NoError(t, writeAuthorTable(&buf, report, cfg, time.Second))
	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "...")
}

func TestGetMaxTableAuthorWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 50, expected: 15},
		{width: 80, expected: 40},
		{width: 200, expected: 60},
	}
	for _, tt := range tests {
		cfg := &contract.Config{Width: tt.width}
		assert.Equal(t, tt.expected, GetMaxTableAuthorWidth(cfg), "width %d", tt.width)
	}
}

func TestLogAnalysisHeader(t *testing.T) {
	cfg := &contract.Config{
		RepoPath:            "/work/githours",
		GitBackend:          schema.ExecBackend,
		SessionThreshold:    90 * time.Minute,
		FirstCommitAddition: 30 * time.Minute,
	}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		LogAnalysisHeader(&buf, cfg)
		assert.Equal(t,
			"Repo: githours (Backend: exec)\nSession threshold: 1h30m0s, first commit addition: 30m0s\n",
			buf.String())
	})

	t.Run("emoji", func(t *testing.T) {
		withEmoji := cfg.Clone()
		withEmoji.UseEmojis = true
		var buf bytes.Buffer
		LogAnalysisHeader(&buf, withEmoji)
		assert.True(t, strings.HasPrefix(buf.String(), "🔎 Repo: githours"))
	})
}
