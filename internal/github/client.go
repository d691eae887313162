// Package github is a thin REST client for the GitHub API endpoints the
// roast pipeline reads. Only the identity lookups are fatal; every metadata
// endpoint degrades to its zero value when unavailable.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/manan0209/gitroaster/internal/errs"
	"github.com/manan0209/gitroaster/internal/model"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

// Config holds client settings.
type Config struct {
	BaseURL string
	Token   string // optional; raises the API rate limit from 60 to 5000 req/h
	Timeout time.Duration
}

// Client calls the GitHub REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New constructs a client. Zero-value config fields get defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.httpClient.Do(req)
}

// getJSON decodes a 200 response into out. A 404 maps to errs.ErrNotFound;
// other non-200 statuses are plain errors.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("github: %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Profile fetches a user profile. A missing user is errs.ErrNotFound.
func (c *Client) Profile(ctx context.Context, username string) (*model.GitHubProfile, error) {
	var p model.GitHubProfile
	if err := c.getJSON(ctx, "/users/"+username, &p); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("github user %q: %w", username, errs.ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// Repository fetches one repository. A missing repo is errs.ErrNotFound.
func (c *Client) Repository(ctx context.Context, owner, name string) (*model.GitHubRepo, error) {
	var r model.GitHubRepo
	if err := c.getJSON(ctx, "/repos/"+owner+"/"+name, &r); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("repository %s/%s: %w", owner, name, errs.ErrNotFound)
		}
		return nil, err
	}
	return &r, nil
}

// Repositories lists a user's most recently updated repos.
func (c *Client) Repositories(ctx context.Context, username string, perPage int) ([]model.GitHubRepo, error) {
	var rs []model.GitHubRepo
	path := "/users/" + username + "/repos?sort=updated&per_page=" + strconv.Itoa(perPage)
	if err := c.getJSON(ctx, path, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Languages returns the repository language breakdown, or nil when unavailable.
func (c *Client) Languages(ctx context.Context, owner, name string) (map[string]int64, error) {
	resp, err := c.get(ctx, "/repos/"+owner+"/"+name+"/languages")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var langs map[string]int64
	if err := json.NewDecoder(resp.Body).Decode(&langs); err != nil {
		return nil, nil
	}
	return langs, nil
}

// Commits returns recent commits, or nil when unavailable.
func (c *Client) Commits(ctx context.Context, owner, name string, perPage int) ([]model.GitHubCommit, error) {
	path := "/repos/" + owner + "/" + name + "/commits?per_page=" + strconv.Itoa(perPage)
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var cs []model.GitHubCommit
	if err := json.NewDecoder(resp.Body).Decode(&cs); err != nil {
		return nil, nil
	}
	return cs, nil
}

// Contents returns the top-level file listing, or nil when unavailable.
func (c *Client) Contents(ctx context.Context, owner, name string) ([]model.ContentEntry, error) {
	resp, err := c.get(ctx, "/repos/"+owner+"/"+name+"/contents/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	var es []model.ContentEntry
	if err := json.NewDecoder(resp.Body).Decode(&es); err != nil {
		return nil, nil
	}
	return es, nil
}

// FileText downloads a raw file (README excerpts), capped at maxBytes.
func (c *Client) FileText(ctx context.Context, url string, maxBytes int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github: raw download returned status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
