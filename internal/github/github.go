// Package github looks up the open pull requests of the target repository.
// The result feeds the linter's duplicate-PR eligibility cross-check and the
// PR number pre-fill of the add command. Lookups degrade gracefully: callers
// treat an error as "no set available", never as a fatal condition.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

// DefaultTimeout bounds a single lookup.
const DefaultTimeout = 5 * time.Second

// OpenPRSet holds the numbers of currently open pull requests.
type OpenPRSet map[int]struct{}

// Contains reports membership; the nil set contains nothing.
func (s OpenPRSet) Contains(pr int) bool {
	_, ok := s[pr]
	return ok
}

// Max returns the highest open PR number, or zero for an empty set.
func (s OpenPRSet) Max() int {
	max := 0
	for n := range s {
		if n > max {
			max = n
		}
	}
	return max
}

// Lookup resolves the open pull requests of a repository.
type Lookup interface {
	OpenPRs(ctx context.Context, targetRepo string) (OpenPRSet, error)
}

var repoSlugPattern = regexp.MustCompile(`^https://github\.com/([\w.\-]+)/([\w.\-]+)/?$`)

// RepoSlug extracts "owner/name" from a GitHub repository URL.
func RepoSlug(targetRepo string) (string, error) {
	m := repoSlugPattern.FindStringSubmatch(targetRepo)
	if m == nil {
		return "", fmt.Errorf("%q is not a GitHub repository URL", targetRepo)
	}
	return m[1] + "/" + m[2], nil
}

// Client queries the GitHub REST API.
type Client struct {
	// APIBase can be overridden for testing.
	APIBase string
	// Token is sent as a bearer token when set.
	Token string

	httpClient *http.Client
}

// NewClient builds a client with the default API endpoint. The token may be
// empty; unauthenticated requests are rate limited but work for public
// repositories.
func NewClient(token string) *Client {
	return &Client{
		APIBase:    "https://api.github.com",
		Token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

const perPage = 100

// maxPages caps pagination; repositories with more than a thousand open PRs
// are beyond what the pre-fill and eligibility checks need.
const maxPages = 10

// OpenPRs fetches the numbers of all open pull requests.
func (c *Client) OpenPRs(ctx context.Context, targetRepo string) (OpenPRSet, error) {
	slug, err := RepoSlug(targetRepo)
	if err != nil {
		return nil, err
	}

	set := make(OpenPRSet)
	for page := 1; page <= maxPages; page++ {
		numbers, err := c.fetchPage(ctx, slug, page)
		if err != nil {
			return nil, err
		}
		for _, n := range numbers {
			set[n] = struct{}{}
		}
		if len(numbers) < perPage {
			break
		}
	}
	return set, nil
}

func (c *Client) fetchPage(ctx context.Context, slug string, page int) ([]int, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls?state=open&per_page=%d&page=%d", c.APIBase, slug, perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var pulls []struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(body, &pulls); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	numbers := make([]int, 0, len(pulls))
	for _, p := range pulls {
		numbers = append(numbers, p.Number)
	}
	return numbers, nil
}
