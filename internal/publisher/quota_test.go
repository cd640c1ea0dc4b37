package publisher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gracechain/versebot/internal/models"
)

type memoryStore struct {
	saved []models.Usage
}

func (m *memoryStore) SaveUsage(ctx context.Context, u *models.Usage) error {
	m.saved = append(m.saved, *u)
	return nil
}

func TestQuotaDailyAndMonthlyLimits(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	q := NewQuota(models.NewUsage(now), testLimits(), nil).
		WithClock(func() time.Time { return now })

	assert.True(t, q.CanPost(2))
	q.RecordPosts(context.Background(), testLimits().DailyPosts)
	assert.False(t, q.CanPost(1), "daily limit reached")

	// Next day the daily bucket is fresh but the month total remains.
	now = now.Add(24 * time.Hour)
	assert.True(t, q.CanPost(1))
	assert.Equal(t, testLimits().DailyPosts, q.Usage().PostsUsed)
}

func TestQuotaMonthlyCeiling(t *testing.T) {
	now := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	usage := models.NewUsage(now)
	usage.PostsUsed = testLimits().MonthlyPosts - 1

	q := NewQuota(usage, testLimits(), nil).
		WithClock(func() time.Time { return now })

	assert.True(t, q.CanPost(1))
	assert.False(t, q.CanPost(2))
}

func TestQuotaResetsAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2026, time.May, 31, 23, 0, 0, 0, time.UTC)
	usage := models.NewUsage(now)
	usage.PostsUsed = testLimits().MonthlyPosts // exhausted

	q := NewQuota(usage, testLimits(), nil).
		WithClock(func() time.Time { return now })
	assert.False(t, q.CanPost(1))

	now = time.Date(2026, time.June, 1, 0, 5, 0, 0, time.UTC)
	assert.True(t, q.CanPost(1), "fresh month, fresh budget")
	assert.Equal(t, "2026-06", q.Usage().Month)
	assert.Zero(t, q.Usage().PostsUsed)
}

func TestQuotaReadLimits(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	q := NewQuota(models.NewUsage(now), testLimits(), nil).
		WithClock(func() time.Time { return now })

	for i := 0; i < testLimits().DailyReads; i++ {
		assert.True(t, q.CanRead(1))
		q.RecordReads(context.Background(), 1)
	}
	assert.False(t, q.CanRead(1))
}

func TestQuotaPersistsOnRecord(t *testing.T) {
	store := &memoryStore{}
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	q := NewQuota(models.NewUsage(now), testLimits(), store).
		WithClock(func() time.Time { return now })

	q.RecordPosts(context.Background(), 2)
	q.RecordReads(context.Background(), 1)

	assert.Len(t, store.saved, 2)
	assert.Equal(t, 2, store.saved[0].PostsUsed)
}

func TestQuotaUsageCopySharesNoMaps(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	q := NewQuota(models.NewUsage(now), testLimits(), nil).
		WithClock(func() time.Time { return now })

	q.RecordPosts(context.Background(), 1)
	snapshot := q.Usage()
	q.RecordPosts(context.Background(), 1)

	assert.Equal(t, 1, snapshot.PostsToday(now))
	current := q.Usage()
	assert.Equal(t, 2, current.PostsToday(now))
}

func TestQuotaConcurrentReadAndRecord(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	q := NewQuota(models.NewUsage(now), testLimits(), nil).
		WithClock(func() time.Time { return now })

	// A scheduled run records usage while an HTTP handler reports it.
	// Exercised under -race in CI.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			q.CanPost(1)
			q.RecordPosts(context.Background(), 1)
			q.RecordReads(context.Background(), 1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			u := q.Usage()
			_ = u.PostsToday(now)
			_ = u.ReadsToday(now)
		}
	}()
	wg.Wait()

	assert.Equal(t, 200, q.Usage().PostsUsed)
	assert.Equal(t, 200, q.Usage().ReadsUsed)
}
