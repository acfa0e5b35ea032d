package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	gh "github.com/google/go-github/v74/github"

	"github.com/ahmednasr/repo-tools/internal/models"
)

// Sentinel README contents. They are returned as plain text, never as errors.
const (
	ReadmeNotAvailable = "README not available for this repository."
	ReadmeFetchFailed  = "Could not fetch README for this repository."
)

// DefaultSearchTerms is used when the question yields no usable keyword.
const DefaultSearchTerms = "api+endpoint+feature"

// SearchFallbackNote accompanies root contents returned in place of code search.
const SearchFallbackNote = "Code search was unavailable (it may be rate limited), so the repository's root contents are listed instead."

const maxSearchTerms = 3

var punctuation = regexp.MustCompile(`[^\w\s]`)

// SearchFallback is the shape returned by SearchContents when code search fails.
type SearchFallback struct {
	Items []*gh.RepositoryContent `json:"items"`
	Note  string                  `json:"note,omitempty"`
}

// The fetchers below never surface GitHub failures as errors: a failed call
// becomes an error payload, a sentinel string or an empty list. The only error
// they return is the request context's own, once it is done.

// FetchMetadata returns the body of GET /repos/{owner}/{name} untouched.
// On failure it returns {"error": "..."} instead.
func (c *Client) FetchMetadata(ctx context.Context, repo models.RepoRef) (json.RawMessage, error) {
	var body json.RawMessage
	if err := c.get(ctx, repoPath(repo), &body); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[GitHub] metadata for %s failed: %s", repo.FullName(), describe(err))
		payload, _ := json.Marshal(map[string]string{
			"error": "Failed to fetch repository metadata: " + describe(err),
		})
		return payload, nil
	}
	return body, nil
}

// FetchReadme returns the decoded README text of the default branch.
func (c *Client) FetchReadme(ctx context.Context, repo models.RepoRef) (string, error) {
	readme, _, err := c.gh.Repositories.GetReadme(ctx, repo.Owner, repo.Name, nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("[GitHub] readme for %s failed: %s", repo.FullName(), describe(err))
		return ReadmeFetchFailed, nil
	}
	if readme == nil || readme.Content == nil || *readme.Content == "" {
		return ReadmeNotAvailable, nil
	}
	text, err := DecodeContent(*readme.Content)
	if err != nil {
		log.Printf("[GitHub] readme for %s is not valid base64: %v", repo.FullName(), err)
		return ReadmeFetchFailed, nil
	}
	return text, nil
}

// SearchContents runs a code search scoped to the repository using keywords
// derived from query. When the search fails it lists the root contents with
// an explanatory note; when that fails too the item list is empty.
func (c *Client) SearchContents(ctx context.Context, repo models.RepoRef, query string) (json.RawMessage, error) {
	path := fmt.Sprintf("search/code?q=%s+repo:%s/%s",
		DeriveSearchTerms(query), url.QueryEscape(repo.Owner), url.QueryEscape(repo.Name))

	var body json.RawMessage
	err := c.get(ctx, path, &body)
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("[GitHub] code search in %s failed: %s; listing root contents", repo.FullName(), describe(err))

	fallback := SearchFallback{Items: []*gh.RepositoryContent{}}
	items, err := c.listContents(ctx, repo)
	switch {
	case err == nil:
		fallback.Items = items
		fallback.Note = SearchFallbackNote
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		log.Printf("[GitHub] contents of %s failed: %s", repo.FullName(), describe(err))
	}
	return json.Marshal(fallback)
}

// FetchStructure lists the repository's root directory, or nothing on failure.
func (c *Client) FetchStructure(ctx context.Context, repo models.RepoRef) ([]*gh.RepositoryContent, error) {
	items, err := c.listContents(ctx, repo)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[GitHub] contents of %s failed: %s", repo.FullName(), describe(err))
		return []*gh.RepositoryContent{}, nil
	}
	return items, nil
}

func (c *Client) listContents(ctx context.Context, repo models.RepoRef) ([]*gh.RepositoryContent, error) {
	var items []*gh.RepositoryContent
	if err := c.get(ctx, repoPath(repo)+"/contents", &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*gh.RepositoryContent{}
	}
	return items, nil
}

// DeriveSearchTerms turns a question into at most three "+"-joined keywords:
// lower‑cased, punctuation stripped, only words longer than three characters.
func DeriveSearchTerms(query string) string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(query), "")

	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		terms = append(terms, word)
		if len(terms) == maxSearchTerms {
			break
		}
	}
	if len(terms) == 0 {
		return DefaultSearchTerms
	}
	return strings.Join(terms, "+")
}

// DecodeContent decodes GitHub's base64 file content, which arrives wrapped
// with embedded newlines.
func DecodeContent(encoded string) (string, error) {
	raw := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// describe renders a GitHub failure as a short human‑readable reason.
func describe(err error) string {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return "rate limit exceeded"
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return "secondary rate limit exceeded"
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		return fmt.Sprintf("GitHub API returned %s", respErr.Response.Status)
	}
	return err.Error()
}
