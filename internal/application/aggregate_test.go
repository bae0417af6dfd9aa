package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/weeklycommits/internal/application"
	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
)

var testNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func dates(series []model.DailyCount) []string {
	out := make([]string, 0, len(series))
	for _, d := range series {
		out = append(out, d.Date)
	}
	return out
}

func sumCounts(series []model.DailyCount) int {
	total := 0
	for _, d := range series {
		total += d.Count
	}
	return total
}

func TestAggregateDaily_EmptyInputYieldsZeroFilledWindow(t *testing.T) {
	series := application.AggregateDaily(nil, testNow)

	require.Len(t, series, 8)
	assert.Equal(t, []string{
		"2026-10-12", "2026-10-13", "2026-10-14", "2026-10-15",
		"2026-10-16", "2026-10-17", "2026-10-18", "2026-10-19",
	}, dates(series))
	assert.Zero(t, sumCounts(series))
}

func TestAggregateDaily_CountsCommitsPerDay(t *testing.T) {
	commits := []model.Commit{
		commitAt("2026-10-19T01:00:00Z"),
		commitAt("2026-10-19T14:00:00Z"),
		commitAt("2026-10-18T23:59:59Z"),
		commitAt("2026-10-12T00:00:01Z"),
		{Date: nil},
	}

	series := application.AggregateDaily(commits, testNow)

	require.Len(t, series, 8)
	assert.Equal(t, model.DailyCount{Date: "2026-10-12", Count: 1}, series[0])
	assert.Equal(t, model.DailyCount{Date: "2026-10-18", Count: 1}, series[6])
	assert.Equal(t, model.DailyCount{Date: "2026-10-19", Count: 2}, series[7])
	assert.Equal(t, 4, sumCounts(series))
}

func TestAggregateDaily_IgnoresDatesOutsideWindow(t *testing.T) {
	commits := []model.Commit{
		commitAt("2026-10-11T23:59:59Z"),
		commitAt("2026-10-20T00:00:00Z"),
		commitAt("2025-10-19T12:00:00Z"),
	}

	series := application.AggregateDaily(commits, testNow)

	require.Len(t, series, 8)
	assert.Zero(t, sumCounts(series))
}

func TestAggregateDaily_BucketsByUTCDate(t *testing.T) {
	// 02:00 in Tokyo on the 19th is still the 18th in UTC.
	commits := []model.Commit{commitAt("2026-10-19T02:00:00+09:00")}

	series := application.AggregateDaily(commits, testNow)

	assert.Equal(t, 1, series[6].Count)
	assert.Equal(t, 0, series[7].Count)
}

func TestAggregateDaily_WindowIsContiguousForAnyNow(t *testing.T) {
	instants := []time.Time{
		time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 19, 23, 59, 59, 999, time.UTC),
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), // crosses February
		time.Date(2027, 1, 3, 8, 0, 0, 0, time.UTC),  // crosses a year
		time.Date(2026, 10, 19, 8, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)),
	}

	for _, now := range instants {
		series := application.AggregateDaily(nil, now)
		require.Len(t, series, 8, "now=%s", now)

		for i := 1; i < len(series); i++ {
			prev, err := time.Parse("2006-01-02", series[i-1].Date)
			require.NoError(t, err)
			cur, err := time.Parse("2006-01-02", series[i].Date)
			require.NoError(t, err)
			assert.Equal(t, 24*time.Hour, cur.Sub(prev), "gap or duplicate at %s", series[i].Date)
		}
		assert.Equal(t, now.UTC().Format("2006-01-02"), series[7].Date)
	}
}

func TestAggregateDaily_SumMatchesCommitsInWindow(t *testing.T) {
	start := testNow.Add(-application.TrailingWindow)

	var commits []model.Commit
	for i := range 50 {
		ts := start.Add(time.Duration(i) * 3 * time.Hour)
		commits = append(commits, model.Commit{Date: &ts})
	}
	commits = append(commits, model.Commit{})

	series := application.AggregateDaily(commits, testNow)

	assert.Equal(t, 50, sumCounts(series))
}
