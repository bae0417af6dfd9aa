// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
	"github.com/ericfisherdev/weeklycommits/internal/domain/port/driven"
)

// ActivityService turns an encrypted GitHub token into the token owner's
// daily commit counts over the trailing window.
type ActivityService struct {
	decryptor driven.TokenDecryptor
	clients   driven.GitHubClientFactory
	fetcher   *CommitFetcher
	now       func() time.Time
	logger    *slog.Logger
}

// NewActivityService creates an ActivityService with all required dependencies.
func NewActivityService(
	decryptor driven.TokenDecryptor,
	clients driven.GitHubClientFactory,
	fetcher *CommitFetcher,
	logger *slog.Logger,
) *ActivityService {
	return &ActivityService{
		decryptor: decryptor,
		clients:   clients,
		fetcher:   fetcher,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the service clock. Used by tests to pin "now".
func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	s.now = now
	return s
}

// WeeklyActivity decrypts the token, fetches the owner's recent commits and
// returns one DailyCount per day of the trailing window. The current instant is
// read once and shared by the fetch cutoff and the day buckets.
func (s *ActivityService) WeeklyActivity(ctx context.Context, encryptedToken string) ([]model.DailyCount, error) {
	token, err := s.decryptor.Decrypt(encryptedToken)
	if err != nil {
		return nil, fmt.Errorf("decrypting token: %w", err)
	}

	client, err := s.clients.ForToken(token)
	if err != nil {
		return nil, fmt.Errorf("creating github client: %w", err)
	}

	now := s.now().UTC()

	commits, err := s.fetcher.FetchAll(ctx, client, now.Add(-TrailingWindow))
	if err != nil {
		return nil, err
	}

	series := AggregateDaily(commits, now)
	s.logSummary(series)

	return series, nil
}

func (s *ActivityService) logSummary(series []model.DailyCount) {
	counts := make([]int, 0, len(series))
	for _, d := range series {
		counts = append(counts, d.Count)
	}
	data := stats.LoadRawData(counts)

	total, _ := stats.Sum(data)
	mean, _ := stats.Mean(data)
	busiest, _ := stats.Max(data)

	s.logger.Info("weekly activity computed",
		"days", len(series),
		"commits", int(total),
		"daily_mean", mean,
		"busiest_day", int(busiest),
	)
}
