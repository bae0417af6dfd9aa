package application_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
	"github.com/ericfisherdev/weeklycommits/internal/domain/port/driven"
)

// --- Mock implementations ---

// mockGitHubClient is a testify mock of the driven.GitHubClient port.
type mockGitHubClient struct {
	mock.Mock
}

func (m *mockGitHubClient) AuthenticatedLogin(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitHubClient) ListOwnedRepositories(ctx context.Context) ([]model.Repository, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Repository), args.Error(1)
}

func (m *mockGitHubClient) ListCommitsSince(ctx context.Context, owner, repo string, since time.Time) ([]model.Commit, error) {
	args := m.Called(ctx, owner, repo, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Commit), args.Error(1)
}

type mockDecryptor struct {
	token string
	err   error
}

func (m *mockDecryptor) Decrypt(_ string) (string, error) {
	return m.token, m.err
}

type mockClientFactory struct {
	client   driven.GitHubClient
	err      error
	gotToken string
	calls    int
}

func (m *mockClientFactory) ForToken(token string) (driven.GitHubClient, error) {
	m.gotToken = token
	m.calls++
	return m.client, m.err
}

// commitAt builds a commit authored at the given RFC 3339 instant.
func commitAt(s string) model.Commit {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return model.Commit{Date: &t}
}
