// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
)

// ErrAuthentication is returned when GitHub rejects the supplied token.
var ErrAuthentication = errors.New("github authentication failed")

// GitHubClient defines the driven port for reading commit activity from GitHub.
// A client is bound to exactly one token.
type GitHubClient interface {
	// AuthenticatedLogin returns the login of the user owning the token.
	AuthenticatedLogin(ctx context.Context) (string, error)
	// ListOwnedRepositories returns every repository owned by the authenticated
	// user, most recently pushed first.
	ListOwnedRepositories(ctx context.Context) ([]model.Repository, error)
	// ListCommitsSince returns every commit in owner/repo authored at or after since.
	ListCommitsSince(ctx context.Context, owner, repo string, since time.Time) ([]model.Commit, error)
}

// GitHubClientFactory builds a GitHubClient authenticated with a bearer token.
type GitHubClientFactory interface {
	ForToken(token string) (GitHubClient, error)
}
