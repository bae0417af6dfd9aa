package application

import (
	"time"

	"github.com/ericfisherdev/weeklycommits/internal/domain/model"
)

// TrailingWindow is how far back commit activity is reported.
const TrailingWindow = 7 * 24 * time.Hour

const dateLayout = "2006-01-02"

// AggregateDaily buckets commits by UTC calendar day over the trailing window
// ending at now. Every day from now-TrailingWindow through now appears exactly
// once, in ascending order, even when it has no commits. Commits without a date
// or outside the window are ignored.
func AggregateDaily(commits []model.Commit, now time.Time) []model.DailyCount {
	first := truncateToDay(now.Add(-TrailingWindow))
	last := truncateToDay(now)

	var series []model.DailyCount
	index := make(map[string]int)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		index[key] = len(series)
		series = append(series, model.DailyCount{Date: key})
	}

	for _, c := range commits {
		if c.Date == nil {
			continue
		}
		if i, ok := index[c.Date.UTC().Format(dateLayout)]; ok {
			series[i].Count++
		}
	}

	return series
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
