// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
	"github.com/ericfisherdev/weeklycommits/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.GitHubClient        = (*Client)(nil)
	_ driven.GitHubClientFactory = (*ClientFactory)(nil)
)

const perPage = 100

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. oauth2 (static bearer token)
//  3. go-github (GitHub REST API client)
//
// baseURL may be empty to target api.github.com.
func NewClient(token, baseURL string) (*Client, error) {
	rateLimitClient := github_ratelimit.NewClient(http.DefaultTransport)
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitClient.Transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
	}

	if baseURL == "" {
		return &Client{gh: gh.NewClient(httpClient)}, nil
	}
	return NewClientWithHTTPClient(httpClient, baseURL)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// ClientFactory builds one Client per token. All clients share the base URL.
type ClientFactory struct {
	baseURL string
}

// NewClientFactory creates a factory for clients targeting baseURL
// (empty for api.github.com).
func NewClientFactory(baseURL string) *ClientFactory {
	return &ClientFactory{baseURL: baseURL}
}

// ForToken returns a client authenticated with token.
func (f *ClientFactory) ForToken(token string) (driven.GitHubClient, error) {
	return NewClient(token, f.baseURL)
}

// AuthenticatedLogin returns the login of the token's owner.
// A 401 from GitHub is reported as driven.ErrAuthentication.
func (c *Client) AuthenticatedLogin(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("fetching authenticated user: %w", authError(err))
	}

	logRateLimit(resp, "user", 0, 1)

	login := user.GetLogin()
	if login == "" {
		return "", errors.New("fetching authenticated user: empty login")
	}
	return login, nil
}

// ListOwnedRepositories retrieves every repository owned by the authenticated
// user, most recently pushed first. It handles pagination automatically.
func (c *Client) ListOwnedRepositories(ctx context.Context) ([]model.Repository, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner",
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var allRepos []model.Repository

	for {
		repos, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("listing repositories (page %d): %w", opts.Page, authError(err))
		}

		logRateLimit(resp, "user/repos", opts.Page, len(repos))

		for _, r := range repos {
			allRepos = append(allRepos, mapRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if allRepos == nil {
		allRepos = []model.Repository{}
	}

	return allRepos, nil
}

// ListCommitsSince retrieves every commit in owner/repo since the given instant.
// It handles pagination automatically. An empty repository (409) has no commits.
func (c *Client) ListCommitsSince(ctx context.Context, owner, repo string, since time.Time) ([]model.Commit, error) {
	opts := &gh.CommitsListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	fullName := owner + "/" + repo

	var allCommits []model.Commit

	for {
		commits, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusConflict {
				return []model.Commit{}, nil
			}
			return nil, fmt.Errorf("listing commits for %s (page %d): %w", fullName, opts.Page, err)
		}

		logRateLimit(resp, fullName+"/commits", opts.Page, len(commits))

		for _, commit := range commits {
			allCommits = append(allCommits, mapCommit(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if allCommits == nil {
		allCommits = []model.Commit{}
	}

	return allCommits, nil
}

// mapRepository converts a go-github Repository to a domain model Repository.
func mapRepository(r *gh.Repository) model.Repository {
	return model.Repository{
		Owner:    r.GetOwner().GetLogin(),
		Name:     r.GetName(),
		FullName: r.GetFullName(),
		PushedAt: r.GetPushedAt().Time,
	}
}

// mapCommit keeps only the author date. A missing author or date maps to a nil Date.
func mapCommit(c *gh.RepositoryCommit) model.Commit {
	date := c.GetCommit().GetAuthor().GetDate()
	if date.IsZero() {
		return model.Commit{}
	}
	t := date.Time
	return model.Commit{Date: &t}
}

// authError marks 401 responses with driven.ErrAuthentication.
func authError(err error) error {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", driven.ErrAuthentication, err)
	}
	return err
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
