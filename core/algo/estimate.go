// Package algo has the pure algorithms behind githours: the session-based
// hour estimator and author ranking.
package algo

import (
	"math"
	"slices"
	"time"
)

// Default estimator parameters.
const (
	DefaultSessionThreshold    = 120 * time.Minute
	DefaultFirstCommitAddition = 120 * time.Minute
)

// EstimatorConfig holds the tunable parameters of EstimateHours.
type EstimatorConfig struct {
	// SessionThreshold is the largest gap between two consecutive commits that
	// still counts as one continuous coding session (exclusive).
	SessionThreshold time.Duration

	// FirstCommitAddition is credited for every gap at or above SessionThreshold,
	// standing in for the unobservable work before a session's first commit.
	FirstCommitAddition time.Duration
}

// DefaultEstimatorConfig returns the estimator parameters used when nothing is configured.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		SessionThreshold:    DefaultSessionThreshold,
		FirstCommitAddition: DefaultFirstCommitAddition,
	}
}

// EstimateHours converts one author's commit timestamps into an estimate of
// hours worked. Timestamps may be given in any order; the input slice is not
// modified. Gaps shorter than cfg.SessionThreshold are counted literally and
// longer gaps are replaced by cfg.FirstCommitAddition. The total is rounded
// half-up to whole hours. Fewer than two timestamps yield 0.
func EstimateHours(dates []time.Time, cfg EstimatorConfig) int {
	if len(dates) < 2 {
		return 0
	}

	// Oldest commit first, newest last
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int {
		return a.Compare(b)
	})

	var total time.Duration
	for i := range len(sorted) - 1 {
		credit := sessionCredit(sorted[i+1].Sub(sorted[i]), cfg)
		if credit > math.MaxInt64-total {
			// Saturate instead of wrapping to a negative total
			total = math.MaxInt64
			break
		}
		total += credit
	}

	return roundHalfUp(total.Hours())
}

// sessionCredit returns the work credited for a single gap between two
// consecutive commits.
func sessionCredit(gap time.Duration, cfg EstimatorConfig) time.Duration {
	if gap < cfg.SessionThreshold {
		return gap
	}
	return cfg.FirstCommitAddition
}

// roundHalfUp rounds a non-negative value to the nearest integer with ties
// going up (2.5 -> 3).
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
