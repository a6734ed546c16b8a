package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/zinal-app/apiserver/types"
)

type fakeClickRepo struct {
	logs   []types.ClickLog
	nextID int64
}

func (f *fakeClickRepo) Insert(_ context.Context, log types.ClickLog) (types.ClickLog, error) {
	f.nextID++
	log.ID = f.nextID
	if log.ClickedAt.IsZero() {
		log.ClickedAt = time.Now().UTC()
	}
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeClickRepo) ListRecent(_ context.Context, limit int) ([]types.ClickLog, error) {
	out := make([]types.ClickLog, 0, limit)
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.logs[i])
	}
	return out, nil
}

func (f *fakeClickRepo) ListSince(_ context.Context, start time.Time) ([]types.ClickLog, error) {
	var out []types.ClickLog
	for _, log := range f.logs {
		if !log.ClickedAt.Before(start) {
			out = append(out, log)
		}
	}
	return out, nil
}

func newTestStatsService(repo *fakeClickRepo, now time.Time) *StatsService {
	svc := NewStatsService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func click(button string, at time.Time) types.ClickLog {
	return types.ClickLog{UserID: 1, ButtonName: button, ClickedAt: at}
}

func TestClickStatsDailyBuckets(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	repo := &fakeClickRepo{logs: []types.ClickLog{
		click("telegram", now),
		click("telegram", now.AddDate(0, 0, -1)),
		click("compra", now.AddDate(0, 0, -1)),
		click("compra", now.AddDate(0, 0, -30)),
		// Outside the window, must not be counted.
		click("telegram", now.AddDate(0, 0, -31)),
	}}

	stats, err := newTestStatsService(repo, now).ClickStats(context.Background(), PeriodDaily)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if len(stats.Labels) != 31 || len(stats.Telegram) != 31 || len(stats.Compra) != 31 || len(stats.Total) != 31 {
		t.Fatalf("expected 31 buckets, got %d/%d/%d/%d",
			len(stats.Labels), len(stats.Telegram), len(stats.Compra), len(stats.Total))
	}
	if stats.Labels[0] != "2026-07-31" || stats.Labels[30] != "2026-08-30" {
		t.Fatalf("label range = %q .. %q", stats.Labels[0], stats.Labels[30])
	}

	sum := 0
	for i := range stats.Total {
		if stats.Total[i] != stats.Telegram[i]+stats.Compra[i] {
			t.Fatalf("total[%d] not elementwise sum", i)
		}
		sum += stats.Total[i]
	}
	if sum != 4 {
		t.Fatalf("total clicks in window = %d, want 4", sum)
	}

	if stats.Telegram[30] != 1 {
		t.Fatalf("today telegram = %d, want 1", stats.Telegram[30])
	}
	if stats.Telegram[29] != 1 || stats.Compra[29] != 1 {
		t.Fatalf("yesterday = %d/%d, want 1/1", stats.Telegram[29], stats.Compra[29])
	}
	if stats.Compra[0] != 1 {
		t.Fatalf("window start compra = %d, want 1", stats.Compra[0])
	}
}

func TestClickStatsUnknownButtonCountsAsCompra(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	repo := &fakeClickRepo{logs: []types.ClickLog{
		click("whatsapp", now),
		click("telegram", now),
	}}

	stats, err := newTestStatsService(repo, now).ClickStats(context.Background(), PeriodDaily)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Compra[30] != 1 || stats.Telegram[30] != 1 {
		t.Fatalf("today = telegram %d compra %d, want 1/1", stats.Telegram[30], stats.Compra[30])
	}
}

func TestClickStatsWeeklyBuckets(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	repo := &fakeClickRepo{logs: []types.ClickLog{
		click("telegram", now),
		click("compra", now.AddDate(0, 0, -7)),
	}}

	stats, err := newTestStatsService(repo, now).ClickStats(context.Background(), PeriodWeekly)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if len(stats.Labels) != 13 {
		t.Fatalf("expected 13 buckets, got %d", len(stats.Labels))
	}
	year, week := now.ISOWeek()
	if want := fmt.Sprintf("%d-W%02d", year, week); stats.Labels[12] != want {
		t.Fatalf("last label = %q, want %q", stats.Labels[12], want)
	}
	if stats.Telegram[12] != 1 {
		t.Fatalf("current week telegram = %d, want 1", stats.Telegram[12])
	}
	if stats.Compra[11] != 1 {
		t.Fatalf("previous week compra = %d, want 1", stats.Compra[11])
	}
}

func TestClickStatsMonthlyBuckets(t *testing.T) {
	// Mid-January: the approximate 360-day window must still walk months
	// with calendar-correct rollover across the year boundary.
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	repo := &fakeClickRepo{logs: []types.ClickLog{
		click("telegram", now),
		click("compra", time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)),
	}}

	stats, err := newTestStatsService(repo, now).ClickStats(context.Background(), PeriodMonthly)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if len(stats.Labels) != 13 {
		t.Fatalf("expected 13 buckets, got %d", len(stats.Labels))
	}
	// First of current month minus 360 days lands in 2025-01.
	if stats.Labels[0] != "2025-01" {
		t.Fatalf("first label = %q, want 2025-01", stats.Labels[0])
	}
	if stats.Labels[12] != "2026-01" {
		t.Fatalf("last label = %q, want 2026-01", stats.Labels[12])
	}
	if stats.Telegram[12] != 1 {
		t.Fatalf("current month telegram = %d, want 1", stats.Telegram[12])
	}
	if stats.Compra[11] != 1 {
		t.Fatalf("december compra = %d, want 1", stats.Compra[11])
	}
}

func TestClickStatsUnknownPeriodFallsBackToMonthly(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	stats, err := newTestStatsService(&fakeClickRepo{}, now).ClickStats(context.Background(), "hourly")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.Labels) != 13 {
		t.Fatalf("expected monthly fallback with 13 buckets, got %d", len(stats.Labels))
	}
	for i := range stats.Total {
		if stats.Total[i] != 0 {
			t.Fatalf("empty repo must produce zero-filled buckets")
		}
	}
}
