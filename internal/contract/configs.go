package contract

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/githours/core/algo"
	"github.com/huangsam/githours/schema"
)

// Default values for configuration.
const (
	DefaultSessionThresholdMinutes    = 120.0
	DefaultFirstCommitAdditionMinutes = 120.0
	MaxResultLimit                    = 1000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath string
	Branches []string // Optional allowlist of local branches (empty = all)

	SessionThreshold    time.Duration
	FirstCommitAddition time.Duration

	GitBackend schema.GitBackend
	Workers    int
	Limit      int // Number of authors to show (0 = all)
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored totals in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	SessionThreshold    float64 `mapstructure:"session-threshold"`
	FirstCommitAddition float64 `mapstructure:"first-commit-addition"`
	Branches            string  `mapstructure:"branches"`
	GitBackend          string  `mapstructure:"git-backend"`
	Workers             int     `mapstructure:"workers"`
	Output              string  `mapstructure:"output"`
	OutputFile          string  `mapstructure:"output-file"`
	Width               int     `mapstructure:"width"`
	Emoji               string  `mapstructure:"emoji"`
	Color               string  `mapstructure:"color"`

	// --- Fields from authorsCmd.Flags() ---
	Limit int `mapstructure:"limit"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Branches = slices.Clone(c.Branches)
	return &clone
}

// EstimatorConfig returns the estimator parameters carried by this config.
func (c *Config) EstimatorConfig() algo.EstimatorConfig {
	return algo.EstimatorConfig{
		SessionThreshold:    c.SessionThreshold,
		FirstCommitAddition: c.FirstCommitAddition,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processEstimator(cfg, input); err != nil {
		return err
	}
	if err := resolveGitPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Backend Validation ---
	cfg.GitBackend = schema.GitBackend(strings.ToLower(input.GitBackend))
	if _, ok := schema.ValidGitBackends[cfg.GitBackend]; !ok {
		return fmt.Errorf("invalid git backend '%s'. must be exec, gogit", input.GitBackend)
	}

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 5. Branch Allowlist ---
	cfg.Branches = nil
	for p := range strings.SplitSeq(input.Branches, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			cfg.Branches = append(cfg.Branches, trimmed)
		}
	}

	return nil
}

// processEstimator converts the minute-based inputs into estimator durations.
func processEstimator(cfg *Config, input *ConfigRawInput) error {
	if math.IsNaN(input.SessionThreshold) || input.SessionThreshold <= 0 {
		return fmt.Errorf("session threshold must be greater than 0 minutes (received %v)", input.SessionThreshold)
	}
	if !fitsDuration(input.SessionThreshold) {
		return fmt.Errorf("session threshold is too large (received %v minutes)", input.SessionThreshold)
	}
	if math.IsNaN(input.FirstCommitAddition) || input.FirstCommitAddition < 0 {
		return fmt.Errorf("first commit addition cannot be negative (received %v)", input.FirstCommitAddition)
	}
	if !fitsDuration(input.FirstCommitAddition) {
		return fmt.Errorf("first commit addition is too large (received %v minutes)", input.FirstCommitAddition)
	}
	cfg.SessionThreshold = MinutesToDuration(input.SessionThreshold)
	cfg.FirstCommitAddition = MinutesToDuration(input.FirstCommitAddition)
	return nil
}

// RevalidateEstimator overrides the estimator parameters of an already
// validated config, applying the same rules as ProcessAndValidate.
func RevalidateEstimator(cfg *Config, sessionThresholdMinutes, firstCommitAdditionMinutes float64) error {
	return processEstimator(cfg, &ConfigRawInput{
		SessionThreshold:    sessionThresholdMinutes,
		FirstCommitAddition: firstCommitAdditionMinutes,
	})
}

// RevalidateRepoPath points an already validated config at another repository.
func RevalidateRepoPath(ctx context.Context, cfg *Config, client GitClient, repoPath string) error {
	return resolveGitPath(ctx, cfg, client, &ConfigRawInput{RepoPathStr: repoPath})
}

// fitsDuration reports whether a non-negative number of minutes converts to a
// time.Duration without overflowing. float64(math.MaxInt64) is exactly 2^63.
func fitsDuration(minutes float64) bool {
	return minutes*float64(time.Minute) < float64(math.MaxInt64)
}

// MinutesToDuration converts a possibly fractional number of minutes to a duration.
func MinutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveGitPath checks that the target is a repository and resolves its root.
// A file path is resolved through its parent directory.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	gitContextPath := absSearchPath
	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	ok, err := client.IsRepository(ctx, gitContextPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotARepository, gitContextPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	return nil
}

// NewGitClient returns the GitClient implementation for the given backend.
func NewGitClient(backend schema.GitBackend) GitClient {
	if backend == schema.GoGitBackend {
		return NewGoGitClient()
	}
	return NewLocalGitClient()
}
