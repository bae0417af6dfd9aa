package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
	"github.com/ericfisherdev/weeklycommits/internal/domain/port/driven"
)

// CommitFetcher collects the authenticated user's commits across all of their
// repositories.
type CommitFetcher struct {
	concurrency int
	logger      *slog.Logger
}

// NewCommitFetcher creates a CommitFetcher. concurrency caps the number of
// repositories fetched at once; zero or less means one goroutine per repository.
func NewCommitFetcher(concurrency int, logger *slog.Logger) *CommitFetcher {
	return &CommitFetcher{
		concurrency: concurrency,
		logger:      logger,
	}
}

// FetchAll resolves the authenticated user, lists their repositories and fetches
// every commit authored since the cutoff. A repository whose commits cannot be
// fetched is logged and contributes nothing; failures resolving the user or
// listing repositories abort the whole fetch, as does ctx ending before every
// repository has been fetched.
func (f *CommitFetcher) FetchAll(ctx context.Context, client driven.GitHubClient, since time.Time) ([]model.Commit, error) {
	login, err := client.AuthenticatedLogin(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving authenticated user: %w", err)
	}

	repos, err := client.ListOwnedRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	// Each goroutine owns exactly one slot.
	perRepo := make([][]model.Commit, len(repos))

	var g errgroup.Group
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}

	for i, repo := range repos {
		g.Go(func() error {
			commits, err := client.ListCommitsSince(ctx, login, repo.Name, since)
			if err != nil {
				// Cancellation is reported once for the whole fetch below.
				if ctx.Err() != nil {
					return nil
				}
				f.logger.Warn("skipping repository, commit fetch failed",
					"repo", repo.Name,
					"error", err,
				)
				return nil
			}
			perRepo[i] = commits
			return nil
		})
	}

	// Goroutines never return an error.
	_ = g.Wait()

	// Repositories skipped because the request ended would otherwise read as
	// days without commits.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetching commits: %w", err)
	}

	total := 0
	for _, commits := range perRepo {
		total += len(commits)
	}

	all := make([]model.Commit, 0, total)
	for _, commits := range perRepo {
		all = append(all, commits...)
	}

	f.logger.Debug("commits fetched",
		"repositories", len(repos),
		"commits", len(all),
		"since", since.Format(time.RFC3339),
	)

	return all, nil
}
