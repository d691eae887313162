// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// RoastType distinguishes profile roasts from repository roasts.
type RoastType string

// Valid roast types.
const (
	RoastTypeProfile RoastType = "profile"
	RoastTypeRepo    RoastType = "repo"
)

// Roast is a single generated (or fallback) comedic text tied to one GitHub
// username and optionally one repository. Votes is the only mutable field and
// is changed exclusively through the vote ledger flow.
type Roast struct {
	ID        uuid.UUID // server-generated PK
	Username  string
	RepoName  string // empty for profile roasts
	RoastType RoastType
	RoastText string
	Votes     int64 // denormalized tally, >= 0
	CreatedAt time.Time
}

// Vote is one immutable ledger row. The pair (RoastID, Fingerprint) is unique
// at the storage layer; that constraint is the authoritative duplicate check.
type Vote struct {
	ID          uuid.UUID
	RoastID     uuid.UUID
	Fingerprint string
	CreatedAt   time.Time
}

// RoastResult is what the generation pipeline hands back to the API: the
// roast itself, whether persistence succeeded (a failed save still shows the
// text, just without an id to vote on), and whether canned text was used.
type RoastResult struct {
	Roast    Roast
	Saved    bool
	Fallback bool
}

// GitHubProfile is the subset of the GitHub users endpoint the prompts need.
type GitHubProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// GitHubRepo is the subset of the GitHub repos endpoint the prompts need.
type GitHubRepo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stargazers  int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Watchers    int       `json:"watchers_count"`
	OpenIssues  int       `json:"open_issues_count"`
	SizeKB      int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// GitHubCommit carries one commit message from the commits listing.
type GitHubCommit struct {
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

// ContentEntry is one entry of a repository's top-level file listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// ProjectSummary is a condensed view of one repository used in profile prompts.
type ProjectSummary struct {
	Name        string
	Description string
	Stars       int
	Language    string
}

// Analysis aggregates a user's recent repositories for prompt construction.
type Analysis struct {
	TotalRepos     int
	Languages      []string
	ProjectTypes   []string
	TotalStars     int
	TotalForks     int
	RecentActivity bool
	TopProjects    []ProjectSummary
}
