package compose

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechain/versebot/internal/models"
)

func enVerse(text string) models.VerseText {
	return models.VerseText{
		Ref:          models.VerseReference{Book: "John", Chapter: 3, Verse: 16},
		LanguageCode: "en",
		Text:         text,
		Reference:    "John 3:16",
	}
}

func zhVerse(text string) models.VerseText {
	return models.VerseText{
		Ref:          models.VerseReference{Book: "John", Chapter: 3, Verse: 16},
		LanguageCode: "zh",
		Text:         text,
		Reference:    "约翰福音 3:16",
	}
}

func TestTruncateShortTextUntouched(t *testing.T) {
	assert.Equal(t, "short", Truncate("short"))

	exact := strings.Repeat("a", MaxPostLen)
	assert.Equal(t, exact, Truncate(exact))
}

func TestTruncateCutsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Truncate(long)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxPostLen)
	assert.True(t, strings.HasSuffix(got, "…"))
	body := strings.TrimSuffix(got, "…")
	assert.True(t, strings.HasSuffix(body, "word"), "cut must land on a whole word, got %q", body)
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	// No spaces at all, so the cut lands mid-text.
	long := strings.Repeat("神爱世人", 100)
	got := Truncate(long)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), MaxPostLen)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestVerseThread(t *testing.T) {
	draft, err := VerseThread(enVerse("For God so loved the world"), zhVerse("神爱世人"))
	require.NoError(t, err)

	require.Len(t, draft.Segments, 2)
	assert.Equal(t, models.PostScripture, draft.Kind)
	assert.Equal(t, "For God so loved the world\n\n— John 3:16", draft.Segments[0])
	assert.Equal(t, "神爱世人\n\n— 约翰福音 3:16", draft.Segments[1])
}

func TestVerseThreadDegradesToOneSegment(t *testing.T) {
	draft, err := VerseThread(enVerse("For God so loved the world"), models.VerseText{})
	require.NoError(t, err)
	require.Len(t, draft.Segments, 1)
}

func TestVerseThreadEmptyIsError(t *testing.T) {
	_, err := VerseThread(models.VerseText{}, models.VerseText{})
	assert.ErrorIs(t, err, models.ErrEmptyDraft)
}

func TestMarketVerseCarriesMarketLine(t *testing.T) {
	snap := &models.MarketSnapshot{Symbol: "bnb", PriceUSD: 845.5, Change24hPct: 5.321}

	draft, err := MarketVerse(enVerse("For God so loved the world"), zhVerse("神爱世人"), snap)
	require.NoError(t, err)

	require.Len(t, draft.Segments, 2)
	assert.Contains(t, draft.Segments[0], "BNB $845.50")
	assert.Contains(t, draft.Segments[0], "+5.32%")
	assert.NotContains(t, draft.Segments[1], "$", "market line belongs to the lead post only")
}

func TestMarketVerseWithoutSnapshotKeepsVerse(t *testing.T) {
	draft, err := MarketVerse(enVerse("For God so loved the world"), zhVerse("神爱世人"), nil)
	require.NoError(t, err)

	require.Len(t, draft.Segments, 2)
	assert.NotContains(t, draft.Segments[0], "$")
	assert.Contains(t, draft.Segments[0], "John 3:16")
}

func TestMarketAnalysis(t *testing.T) {
	snap := &models.MarketSnapshot{
		Symbol:       "bnb",
		PriceUSD:     68123.456,
		Change24hPct: -2.5,
		Volume24hUSD: 2_500_000_000,
		MarketCapUSD: 120_000_000_000,
		High24hUSD:   69000,
		Low24hUSD:    67000,
	}

	draft, err := MarketAnalysis(snap)
	require.NoError(t, err)
	require.Len(t, draft.Segments, 1)

	text := draft.Segments[0]
	assert.Contains(t, text, "$68,123.46")
	assert.Contains(t, text, "-2.50%")
	assert.Contains(t, text, "📉")
	assert.Contains(t, text, "$2.5B")
	assert.Contains(t, text, "$120.0B")
	assert.LessOrEqual(t, utf8.RuneCountInString(text), MaxPostLen)
}

func TestMarketAnalysisDegraded(t *testing.T) {
	draft, err := MarketAnalysis(nil)
	require.NoError(t, err)
	require.Len(t, draft.Segments, 1)
	assert.Contains(t, draft.Segments[0], "temporarily unavailable")
}

func TestTrendingCoins(t *testing.T) {
	tokens := []models.TrendingToken{
		{Name: "PancakeSwap", Symbol: "cake", PriceUSD: 2.31, Change24hPct: 4.2},
		{Name: "Venus", Symbol: "xvs", PriceUSD: 0.081234, Change24hPct: -1.1},
	}

	draft, err := TrendingCoins(tokens)
	require.NoError(t, err)
	text := draft.Segments[0]

	assert.Contains(t, text, "1. PancakeSwap (CAKE)")
	assert.Contains(t, text, "$2.31")
	assert.Contains(t, text, "+4.20%")
	assert.Contains(t, text, "$0.081234", "sub-dollar prices keep six decimals")
	assert.LessOrEqual(t, utf8.RuneCountInString(text), MaxPostLen)
}

func TestEcosystemNewsTruncatesTitles(t *testing.T) {
	items := []models.NewsItem{
		{Title: strings.Repeat("Very Long Headline ", 5)},
		{Title: "Short"},
		{Title: "Never shown, digest holds two"},
	}

	draft, err := EcosystemNews(items)
	require.NoError(t, err)
	text := draft.Segments[0]

	assert.Contains(t, text, "...")
	assert.Contains(t, text, "2. Short")
	assert.NotContains(t, text, "Never shown")
}

func TestUpcomingProjectsGroupsByBacker(t *testing.T) {
	draft, err := UpcomingProjects(Projects)
	require.NoError(t, err)
	text := draft.Segments[0]

	assert.Contains(t, text, "YZi Labs Backed:")
	assert.Contains(t, text, "Binance Supported:")
	assert.Contains(t, text, "Aster (DeFi)")
	assert.LessOrEqual(t, utf8.RuneCountInString(text), MaxPostLen)
}

func TestCatalogPostsFitAndRotate(t *testing.T) {
	for n := 0; n < len(Insights); n++ {
		draft, err := Insight(n)
		require.NoError(t, err)
		assert.LessOrEqual(t, utf8.RuneCountInString(draft.Segments[0]), MaxPostLen)
	}

	first, err := SecurityTip(0)
	require.NoError(t, err)
	wrapped, err := SecurityTip(len(SecurityTips))
	require.NoError(t, err)
	assert.Equal(t, first.Segments, wrapped.Segments)

	edu, err := Educational(2)
	require.NoError(t, err)
	assert.Contains(t, edu.Segments[0], Topics[2].Title)
}

func TestNoEmptySegmentsEver(t *testing.T) {
	drafts := []func() (models.PostDraft, error){
		func() (models.PostDraft, error) { return MarketAnalysis(nil) },
		func() (models.PostDraft, error) { return TrendingCoins(nil) },
		func() (models.PostDraft, error) { return EcosystemNews(nil) },
		func() (models.PostDraft, error) { return UpcomingProjects(nil) },
	}
	for _, build := range drafts {
		draft, err := build()
		require.NoError(t, err)
		for _, seg := range draft.Segments {
			assert.NotEmpty(t, strings.TrimSpace(seg))
		}
	}
}

func TestUSDFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567.89", usd(1234567.891))
	assert.Equal(t, "845.50", usd(845.5))
	assert.Equal(t, "0.000123", usd(0.0001234))
	assert.Equal(t, "2.5B", compact(2_500_000_000))
	assert.Equal(t, "1.5K", compact(1500))
	assert.Equal(t, "42", compact(42))
}
