// Package schema has models and constants shared by all parts of githours.
package schema

import "time"

// UnknownAuthor is the identity used for commits that carry no author email.
const UnknownAuthor = "unknown"

// Commit is a single commit narrowed to the fields the estimator needs.
type Commit struct {
	Hash        string    `json:"hash"`         // Full commit hash, unique across history
	Date        time.Time `json:"date"`         // Author date of the commit
	AuthorEmail string    `json:"author_email"` // Author email, may be empty
}

// AuthorWork is the estimated work of a single author.
type AuthorWork struct {
	Email   string `json:"email" yaml:"email"`
	Hours   int    `json:"hours" yaml:"hours"`
	Commits int    `json:"commits" yaml:"commits"`
}

// TotalWork is the sum of all AuthorWork records.
type TotalWork struct {
	Hours   int `json:"hours" yaml:"hours"`
	Commits int `json:"commits" yaml:"commits"`
}

// Report is the complete result of one estimation run.
type Report struct {
	RepoPath                   string       `json:"repo_path" yaml:"repo_path"`
	Branches                   []string     `json:"branches" yaml:"branches"`
	Authors                    []AuthorWork `json:"authors,omitempty" yaml:"authors,omitempty"`
	Total                      TotalWork    `json:"total" yaml:"total"`
	SessionThresholdMinutes    float64      `json:"session_threshold_minutes" yaml:"session_threshold_minutes"`
	FirstCommitAdditionMinutes float64      `json:"first_commit_addition_minutes" yaml:"first_commit_addition_minutes"`
}
