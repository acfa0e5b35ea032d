package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// Client is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light: just the endpoints the repository tools require.
type Client struct {
	gh *gh.Client
}

// NewClient returns a ready-to-use GitHub API client.
// baseURL may be empty (public GitHub); token may be empty, but you will be
// subject to very low rate‑limits. Every call is capped by timeout.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	c := gh.NewClient(&http.Client{Timeout: timeout})
	if token != "" {
		c = c.WithAuthToken(token)
	}
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("github: invalid base URL %q: %w", baseURL, err)
		}
		c.BaseURL = u
	}
	c.UserAgent = "repo-tools-api"
	return &Client{gh: c}, nil
}

// get issues a GET against a path relative to the API root and decodes the
// JSON body into v. Any non‑2xx status comes back as an error.
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := c.gh.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	_, err = c.gh.Do(ctx, req, v)
	return err
}

// repoPath returns "repos/{owner}/{name}" with both segments escaped.
func repoPath(repo models.RepoRef) string {
	return fmt.Sprintf("repos/%s/%s", url.PathEscape(repo.Owner), url.PathEscape(repo.Name))
}
