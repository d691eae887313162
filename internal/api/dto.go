package api

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid/v5"

	"github.com/manan0209/gitroaster/internal/model"
)

var (
	reGitHubName  = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	reRepoName    = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	reFingerprint = regexp.MustCompile(`^[a-z0-9]+$`)
)

// CreateRoastRequest is the body of POST /api/roasts.
type CreateRoastRequest struct {
	RoastType string `json:"roast_type"`
	Username  string `json:"username"`
	RepoName  string `json:"repo_name,omitempty"`
}

// Validate checks the request shape before any upstream call is made.
func (r CreateRoastRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RoastType,
			validation.Required,
			validation.In(string(model.RoastTypeProfile), string(model.RoastTypeRepo)),
		),
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(1, 39),
			validation.Match(reGitHubName),
		),
		validation.Field(&r.RepoName,
			validation.Required.When(r.RoastType == string(model.RoastTypeRepo)),
			validation.Empty.When(r.RoastType == string(model.RoastTypeProfile)),
			validation.Length(0, 100),
			validation.Match(reRepoName),
		),
	)
}

// CastVoteRequest is the body of POST /api/roasts/{roastID}/votes.
type CastVoteRequest struct {
	Fingerprint string `json:"fingerprint"`
}

// Validate checks the fingerprint shape. The value stays opaque; only its
// alphabet and length are bounded.
func (r CastVoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Fingerprint,
			validation.Required,
			validation.Length(1, 64),
			validation.Match(reFingerprint),
		),
	)
}

// RoastResponse is the wire form of one roast. ID is empty when persistence
// failed: the text is still shown, there is just nothing to vote on.
type RoastResponse struct {
	ID        string    `json:"id,omitempty"`
	Username  string    `json:"username"`
	RepoName  string    `json:"repo_name,omitempty"`
	RoastType string    `json:"roast_type"`
	RoastText string    `json:"roast_text"`
	Votes     int64     `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	Saved     bool      `json:"saved"`
	Fallback  bool      `json:"fallback"`
}

func toRoastResponse(rst model.Roast, saved, fallback bool) RoastResponse {
	resp := RoastResponse{
		Username:  rst.Username,
		RepoName:  rst.RepoName,
		RoastType: string(rst.RoastType),
		RoastText: rst.RoastText,
		Votes:     rst.Votes,
		CreatedAt: rst.CreatedAt,
		Saved:     saved,
		Fallback:  fallback,
	}
	if rst.ID != uuid.Nil {
		resp.ID = rst.ID.String()
	}
	return resp
}

// VoteResponse carries the roast's new vote total after a successful cast.
type VoteResponse struct {
	Votes int64 `json:"votes"`
}

// VotedResponse answers the advisory "have I voted" probe.
type VotedResponse struct {
	Voted bool `json:"voted"`
}
