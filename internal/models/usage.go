package models

import "time"

// MonthKey and DayKey pin the ledger to UTC calendar boundaries.
const (
	MonthKey = "2006-01"
	DayKey   = "2006-01-02"
)

// Usage is the monthly API usage ledger backing the quota counter.
// Loaded at process start, persisted on every increment, reset when the
// UTC calendar month rolls over.
type Usage struct {
	Month      string         `bson:"month" json:"month"`
	PostsUsed  int            `bson:"posts_used" json:"posts_used"`
	ReadsUsed  int            `bson:"reads_used" json:"reads_used"`
	DailyPosts map[string]int `bson:"daily_posts" json:"daily_posts"`
	DailyReads map[string]int `bson:"daily_reads" json:"daily_reads"`
	LastReset  time.Time      `bson:"last_reset" json:"last_reset"`
}

// NewUsage returns a fresh ledger for the month containing now.
func NewUsage(now time.Time) *Usage {
	now = now.UTC()
	return &Usage{
		Month:      now.Format(MonthKey),
		DailyPosts: map[string]int{},
		DailyReads: map[string]int{},
		LastReset:  now,
	}
}

// Roll resets the ledger if now falls in a later month than the one it
// tracks. Returns true when a reset happened.
func (u *Usage) Roll(now time.Time) bool {
	month := now.UTC().Format(MonthKey)
	if u.Month == month {
		return false
	}
	*u = *NewUsage(now)
	return true
}

// Clone returns a copy of the ledger whose daily maps share no storage
// with the original.
func (u *Usage) Clone() Usage {
	out := *u
	out.DailyPosts = make(map[string]int, len(u.DailyPosts))
	for k, v := range u.DailyPosts {
		out.DailyPosts[k] = v
	}
	out.DailyReads = make(map[string]int, len(u.DailyReads))
	for k, v := range u.DailyReads {
		out.DailyReads[k] = v
	}
	return out
}

// PostsToday returns the posts recorded for the UTC day containing now.
func (u *Usage) PostsToday(now time.Time) int {
	return u.DailyPosts[now.UTC().Format(DayKey)]
}

// ReadsToday returns the reads recorded for the UTC day containing now.
func (u *Usage) ReadsToday(now time.Time) int {
	return u.DailyReads[now.UTC().Format(DayKey)]
}

// RecordPosts adds n posts to the monthly and daily counters.
func (u *Usage) RecordPosts(now time.Time, n int) {
	u.PostsUsed += n
	if u.DailyPosts == nil {
		u.DailyPosts = map[string]int{}
	}
	u.DailyPosts[now.UTC().Format(DayKey)] += n
}

// RecordReads adds n reads to the monthly and daily counters.
func (u *Usage) RecordReads(now time.Time, n int) {
	u.ReadsUsed += n
	if u.DailyReads == nil {
		u.DailyReads = map[string]int{}
	}
	u.DailyReads[now.UTC().Format(DayKey)] += n
}
