package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zinal-app/apiserver/types"
)

// Aggregation periods accepted by ClickStats. Anything else falls through to
// the monthly report.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

const (
	dailyWindowDays    = 30
	weeklyWindowWeeks  = 12
	monthlyWindowCount = 12
)

// StatsService buckets click logs into fixed time ranges for the admin
// dashboard charts.
type StatsService struct {
	repo ClickLogRepository
	now  func() time.Time
}

func NewStatsService(repo ClickLogRepository) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

// ClickStats builds the time series for the requested period. Buckets are
// deterministic and exhaustive over the fixed range: every label is present
// and zero-filled even when no clicks landed in it.
//
// Any button name other than "telegram" counts toward the compra series, so
// the per-bucket total always equals the number of logs in that bucket.
func (s *StatsService) ClickStats(ctx context.Context, period string) (types.ClickStats, error) {
	now := s.now().UTC()

	var labels []string
	var start time.Time
	var labelFor func(t time.Time) string

	switch period {
	case PeriodDaily:
		start = dateOf(now.AddDate(0, 0, -dailyWindowDays))
		labels = make([]string, 0, dailyWindowDays+1)
		for i := 0; i <= dailyWindowDays; i++ {
			labels = append(labels, start.AddDate(0, 0, i).Format("2006-01-02"))
		}
		labelFor = func(t time.Time) string { return t.Format("2006-01-02") }

	case PeriodWeekly:
		start = dateOf(now.AddDate(0, 0, -7*weeklyWindowWeeks))
		labels = make([]string, 0, weeklyWindowWeeks+1)
		for i := 0; i <= weeklyWindowWeeks; i++ {
			labels = append(labels, weekLabel(start.AddDate(0, 0, 7*i)))
		}
		labelFor = weekLabel

	default:
		// Monthly window start is approximate: 30*12 days back from the
		// first of the current month, then a calendar-correct walk forward.
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = dateOf(firstOfMonth.AddDate(0, 0, -30*monthlyWindowCount))
		labels = make([]string, 0, monthlyWindowCount+1)
		cur := start
		for i := 0; i <= monthlyWindowCount; i++ {
			labels = append(labels, cur.Format("2006-01"))
			year := cur.Year() + int(cur.Month())/12
			month := int(cur.Month())%12 + 1
			cur = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		}
		labelFor = func(t time.Time) string { return t.Format("2006-01") }
	}

	logs, err := s.repo.ListSince(ctx, start)
	if err != nil {
		return types.ClickStats{}, err
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	stats := types.ClickStats{
		Labels:   labels,
		Telegram: make([]int, len(labels)),
		Compra:   make([]int, len(labels)),
		Total:    make([]int, len(labels)),
	}
	for _, log := range logs {
		i, ok := index[labelFor(log.ClickedAt.UTC())]
		if !ok {
			continue
		}
		if log.ButtonName == types.ButtonTelegram {
			stats.Telegram[i]++
		} else {
			stats.Compra[i]++
		}
	}
	for i := range stats.Total {
		stats.Total[i] = stats.Telegram[i] + stats.Compra[i]
	}
	return stats, nil
}

// dateOf truncates t to midnight UTC.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekLabel formats the ISO year-week of t, e.g. "2026-W09".
func weekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
