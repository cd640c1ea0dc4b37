package publisher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/models"
)

// UsageStore persists the monthly ledger.
type UsageStore interface {
	SaveUsage(ctx context.Context, usage *models.Usage) error
}

// Quota gates every API call against the monthly and daily limits. Safe
// for concurrent use: the daemon reads the ledger from HTTP handlers
// while a scheduled run mutates it.
type Quota struct {
	mu     sync.Mutex
	usage  *models.Usage
	limits config.Limits
	store  UsageStore
	now    func() time.Time
}

// NewQuota wraps a loaded ledger. store may be nil in tests; the ledger
// then lives in memory only.
func NewQuota(usage *models.Usage, limits config.Limits, store UsageStore) *Quota {
	return &Quota{
		usage:  usage,
		limits: limits,
		store:  store,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (q *Quota) WithClock(now func() time.Time) *Quota {
	q.now = now
	return q
}

// CanPost reports whether n more posts fit inside both the monthly and
// the daily budget. Rolls the ledger over a month boundary first.
func (q *Quota) CanPost(n int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.usage.Roll(now)

	if q.usage.PostsUsed+n > q.limits.MonthlyPosts {
		log.Warn().
			Int("used", q.usage.PostsUsed).
			Int("needed", n).
			Int("limit", q.limits.MonthlyPosts).
			Msg("Monthly post limit reached")
		return false
	}
	if q.usage.PostsToday(now)+n > q.limits.DailyPosts {
		log.Warn().
			Int("used", q.usage.PostsToday(now)).
			Int("needed", n).
			Int("limit", q.limits.DailyPosts).
			Msg("Daily post limit reached")
		return false
	}
	return true
}

// CanRead reports whether n more reads fit inside the budgets.
func (q *Quota) CanRead(n int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.usage.Roll(now)

	if q.usage.ReadsUsed+n > q.limits.MonthlyReads {
		log.Warn().
			Int("used", q.usage.ReadsUsed).
			Int("needed", n).
			Int("limit", q.limits.MonthlyReads).
			Msg("Monthly read limit reached")
		return false
	}
	if q.usage.ReadsToday(now)+n > q.limits.DailyReads {
		log.Warn().
			Int("used", q.usage.ReadsToday(now)).
			Int("needed", n).
			Int("limit", q.limits.DailyReads).
			Msg("Daily read limit reached")
		return false
	}
	return true
}

// RecordPosts counts n posts against the ledger and persists it. A
// persistence failure keeps the in-memory count and is logged, not
// returned; losing a save must never unpost a tweet.
func (q *Quota) RecordPosts(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.usage.Roll(now)
	q.usage.RecordPosts(now, n)
	q.persist(ctx)

	log.Info().
		Int("count", n).
		Int("month_total", q.usage.PostsUsed).
		Int("day_total", q.usage.PostsToday(now)).
		Msg("Recorded posts")
}

// RecordReads counts n reads against the ledger and persists it.
func (q *Quota) RecordReads(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	q.usage.Roll(now)
	q.usage.RecordReads(now, n)
	q.persist(ctx)
}

func (q *Quota) persist(ctx context.Context) {
	if q.store == nil {
		return
	}
	if err := q.store.SaveUsage(ctx, q.usage); err != nil {
		log.Error().Err(err).Msg("Failed to persist usage ledger")
	}
}

// Usage returns a deep copy of the current ledger for reporting.
func (q *Quota) Usage() models.Usage {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.usage.Roll(q.now())
	return q.usage.Clone()
}
