package bot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/models"
	"github.com/gracechain/versebot/internal/verses"
)

func testConfig() *config.Config {
	return &config.Config{
		CoinID:     "binancecoin",
		RunLockTTL: 15 * time.Minute,
		Limits: config.Limits{
			MonthlyPosts:       500,
			MonthlyReads:       100,
			DailyPosts:         17,
			DailyReads:         4,
			PostsPerThread:     2,
			MaxInteractionsDay: 3,
		},
	}
}

type stubBible struct {
	fail bool
}

func (s *stubBible) GetVerse(ctx context.Context, ref models.VerseReference, lang string) (*models.VerseText, error) {
	if s.fail {
		return nil, models.ErrProviderUnavailable
	}
	return &models.VerseText{
		Ref:          ref,
		LanguageCode: lang,
		Text:         "text of " + ref.String() + " in " + lang,
		Reference:    ref.String(),
	}, nil
}

type stubMarket struct {
	snap     *models.MarketSnapshot
	trending []models.TrendingToken
	fail     bool
}

func (s *stubMarket) GetSnapshot(ctx context.Context, coinID string) (*models.MarketSnapshot, error) {
	if s.fail || s.snap == nil {
		return nil, models.ErrProviderUnavailable
	}
	return s.snap, nil
}

func (s *stubMarket) GetTrending(ctx context.Context, limit int) ([]models.TrendingToken, error) {
	if s.fail {
		return nil, models.ErrProviderUnavailable
	}
	return s.trending, nil
}

type stubPublisher struct {
	drafts     []models.PostDraft
	replies    []string
	nextID     int
	publishErr error
}

func (s *stubPublisher) Publish(ctx context.Context, draft models.PostDraft) models.PublishResult {
	if s.publishErr != nil {
		return models.PublishResult{Err: s.publishErr}
	}
	s.drafts = append(s.drafts, draft)
	ids := make([]string, len(draft.Segments))
	for i := range ids {
		s.nextID++
		ids[i] = fmt.Sprintf("id-%d", s.nextID)
	}
	return models.PublishResult{PostIDs: ids, Succeeded: true}
}

func (s *stubPublisher) PublishReply(ctx context.Context, text, inReplyTo string) (string, error) {
	if s.publishErr != nil {
		return "", s.publishErr
	}
	s.replies = append(s.replies, inReplyTo)
	s.nextID++
	return fmt.Sprintf("id-%d", s.nextID), nil
}

type stubReader struct {
	tweets map[string][]models.Tweet
	reads  int
}

func (s *stubReader) GetUserTweets(ctx context.Context, userID string, maxResults int) ([]models.Tweet, error) {
	s.reads++
	return s.tweets[userID], nil
}

type stubQuota struct {
	readsLeft int
}

func (s *stubQuota) CanRead(n int) bool { return s.readsLeft >= n }

func (s *stubQuota) RecordReads(ctx context.Context, n int) { s.readsLeft -= n }

type stubLocker struct {
	held     bool
	acquired int
	released int
}

func (s *stubLocker) AcquireRunLock(ctx context.Context, name string, ttl time.Duration) error {
	if s.held {
		return models.ErrRunInProgress
	}
	s.acquired++
	return nil
}

func (s *stubLocker) ReleaseRunLock(ctx context.Context, name string) error {
	s.released++
	return nil
}

func newTestBot(pub *stubPublisher, market *stubMarket, locker *stubLocker) *Bot {
	return New(testConfig(), Deps{
		Bible:     &stubBible{},
		Market:    market,
		Selector:  verses.NewSelector(),
		Publisher: pub,
		Reader:    &stubReader{},
		Quota:     &stubQuota{readsLeft: 4},
		Locker:    locker,
	})
}

func TestRunMorningMode(t *testing.T) {
	pub := &stubPublisher{}
	market := &stubMarket{
		snap:     &models.MarketSnapshot{Symbol: "bnb", PriceUSD: 850, Change24hPct: 2.1},
		trending: []models.TrendingToken{{Name: "PancakeSwap", Symbol: "cake", PriceUSD: 2.3}},
	}
	locker := &stubLocker{}
	b := newTestBot(pub, market, locker)

	err := b.Run(context.Background(), models.ModeMorning)
	require.NoError(t, err)

	assert.Equal(t, models.StateDone, b.State())
	require.Len(t, pub.drafts, 4)
	assert.Equal(t, models.PostScripture, pub.drafts[0].Kind)
	assert.Len(t, pub.drafts[0].Segments, 2, "morning scripture is a bilingual thread")
	assert.Equal(t, models.PostNews, pub.drafts[1].Kind)
	assert.Equal(t, models.PostTrending, pub.drafts[2].Kind)
	assert.Equal(t, models.PostProjects, pub.drafts[3].Kind)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestRunInsightsMode(t *testing.T) {
	pub := &stubPublisher{}
	market := &stubMarket{snap: &models.MarketSnapshot{Symbol: "bnb", PriceUSD: 850, Change24hPct: -3.2}}
	b := newTestBot(pub, market, &stubLocker{})

	err := b.Run(context.Background(), models.ModeInsights)
	require.NoError(t, err)

	assert.Equal(t, models.StateDone, b.State())
	require.Len(t, pub.drafts, 5)
	assert.Equal(t, models.PostAnalysis, pub.drafts[0].Kind)
	assert.Equal(t, models.PostMarketVerse, pub.drafts[4].Kind)
	assert.Contains(t, pub.drafts[4].Segments[0], "$850.00")
}

func TestRunFailsWhenLockHeld(t *testing.T) {
	pub := &stubPublisher{}
	b := newTestBot(pub, &stubMarket{}, &stubLocker{held: true})

	err := b.Run(context.Background(), models.ModeMorning)
	assert.ErrorIs(t, err, models.ErrRunInProgress)
	assert.Equal(t, models.StateFailed, b.State())
	assert.Empty(t, pub.drafts)
}

func TestRunFailsOnQuotaExceeded(t *testing.T) {
	pub := &stubPublisher{publishErr: models.ErrQuotaExceeded}
	b := newTestBot(pub, &stubMarket{}, &stubLocker{})

	err := b.Run(context.Background(), models.ModeMorning)
	assert.ErrorIs(t, err, models.ErrQuotaExceeded)
	assert.Equal(t, models.StateFailed, b.State())
}

func TestRunDegradesAroundDeadMarket(t *testing.T) {
	pub := &stubPublisher{}
	b := newTestBot(pub, &stubMarket{fail: true}, &stubLocker{})

	err := b.Run(context.Background(), models.ModeInsights)
	require.NoError(t, err, "a dead market API degrades posts, it does not fail the run")
	assert.Equal(t, models.StateDone, b.State())
	require.Len(t, pub.drafts, 5)
	assert.Contains(t, pub.drafts[0].Segments[0], "temporarily unavailable")
}

func TestMorningScriptureFailsWhenAllVersesMissing(t *testing.T) {
	b := New(testConfig(), Deps{
		Bible:     &stubBible{fail: true},
		Market:    &stubMarket{},
		Selector:  verses.NewSelector(),
		Publisher: &stubPublisher{},
		Reader:    &stubReader{},
		Quota:     &stubQuota{},
	})

	err := b.MorningScripture(context.Background())
	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestInteractionsOneReplyPerAccount(t *testing.T) {
	reader := &stubReader{tweets: map[string][]models.Tweet{
		"295218901": {
			{ID: "t1", Text: "thoughts on crypto scaling"},
			{ID: "t2", Text: "another crypto take"},
		},
		"98945122": {
			{ID: "t3", Text: "BNB chain update"},
		},
		"44196397": {
			{ID: "t4", Text: "rockets and mars"}, // not relevant
		},
	}}
	pub := &stubPublisher{}
	quota := &stubQuota{readsLeft: 100}

	b := New(testConfig(), Deps{
		Bible:     &stubBible{},
		Market:    &stubMarket{},
		Selector:  verses.NewSelector(),
		Publisher: pub,
		Reader:    reader,
		Quota:     quota,
	})

	count, err := b.Interactions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"t1", "t3"}, pub.replies, "at most one reply per account, irrelevant tweets skipped")
}

func TestInteractionsStopAtReadQuota(t *testing.T) {
	reader := &stubReader{tweets: map[string][]models.Tweet{}}
	b := New(testConfig(), Deps{
		Bible:     &stubBible{},
		Market:    &stubMarket{},
		Selector:  verses.NewSelector(),
		Publisher: &stubPublisher{},
		Reader:    reader,
		Quota:     &stubQuota{readsLeft: 2},
	})

	count, err := b.Interactions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 2, reader.reads, "reads stop when the quota runs out")
}

func TestRunRejectsUnknownMode(t *testing.T) {
	b := newTestBot(&stubPublisher{}, &stubMarket{}, &stubLocker{})
	err := b.Run(context.Background(), models.RunMode("weekly"))
	assert.Error(t, err)
	assert.Equal(t, models.StateFailed, b.State())
}

func TestSignalForMarketBands(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{8.0, "bullish"},
		{1.0, "hope"},
		{-2.0, "patience"},
		{-7.0, "endure"},
		{-20.0, "drop"},
	}
	for _, tt := range tests {
		snap := &models.MarketSnapshot{Change24hPct: tt.change}
		assert.Contains(t, signalForMarket(snap), tt.want, "change %+.1f", tt.change)
	}
	assert.Contains(t, signalForMarket(nil), "uncertain")
}

func TestStagesClosedSet(t *testing.T) {
	b := newTestBot(&stubPublisher{}, &stubMarket{}, nil)

	full := b.stages(models.ModeFull)
	assert.Len(t, full, len(b.stages(models.ModeMorning))+len(b.stages(models.ModeInsights))+len(b.stages(models.ModeInteractions)))
	assert.Nil(t, b.stages(models.RunMode("bogus")))
}
