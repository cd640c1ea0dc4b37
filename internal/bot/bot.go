// Package bot orchestrates the posting routines: verse selection,
// composition, and quota-gated publishing.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/bible"
	"github.com/gracechain/versebot/internal/compose"
	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/models"
	"github.com/gracechain/versebot/internal/verses"
)

// VerseProvider fetches verse text by reference and language.
type VerseProvider interface {
	GetVerse(ctx context.Context, ref models.VerseReference, lang string) (*models.VerseText, error)
}

// MarketProvider fetches market data.
type MarketProvider interface {
	GetSnapshot(ctx context.Context, coinID string) (*models.MarketSnapshot, error)
	GetTrending(ctx context.Context, limit int) ([]models.TrendingToken, error)
}

// TweetReader fetches recent posts from an account.
type TweetReader interface {
	GetUserTweets(ctx context.Context, userID string, maxResults int) ([]models.Tweet, error)
}

// Analyzer classifies text with the language model. Optional; every
// method has a local fallback.
type Analyzer interface {
	AnalyzeTheme(ctx context.Context, text string) (string, error)
	IsRelevant(ctx context.Context, text string) (bool, error)
}

// Publisher posts drafts and replies under quota control.
type Publisher interface {
	Publish(ctx context.Context, draft models.PostDraft) models.PublishResult
	PublishReply(ctx context.Context, text, inReplyTo string) (string, error)
}

// ReadQuota gates the read side of the interactions flow.
type ReadQuota interface {
	CanRead(n int) bool
	RecordReads(ctx context.Context, n int)
}

// Locker serializes runs across invocations.
type Locker interface {
	AcquireRunLock(ctx context.Context, name string, ttl time.Duration) error
	ReleaseRunLock(ctx context.Context, name string) error
}

const runLockName = "bot-run"

// Deps collects the bot's collaborators. Analyzer and Locker may be nil.
type Deps struct {
	Bible     VerseProvider
	Market    MarketProvider
	Selector  *verses.Selector
	Analyzer  Analyzer
	Publisher Publisher
	Reader    TweetReader
	Quota     ReadQuota
	Locker    Locker
}

// Bot runs the posting routines.
type Bot struct {
	cfg       *config.Config
	bible     VerseProvider
	market    MarketProvider
	selector  *verses.Selector
	analyzer  Analyzer
	publisher Publisher
	reader    TweetReader
	quota     ReadQuota
	locker    Locker
	now       func() time.Time

	mu    sync.Mutex
	state models.RunState
}

// New creates a bot.
func New(cfg *config.Config, deps Deps) *Bot {
	return &Bot{
		cfg:       cfg,
		bible:     deps.Bible,
		market:    deps.Market,
		selector:  deps.Selector,
		analyzer:  deps.Analyzer,
		publisher: deps.Publisher,
		reader:    deps.Reader,
		quota:     deps.Quota,
		locker:    deps.Locker,
		now:       time.Now,
		state:     models.StateIdle,
	}
}

// State returns the current run state.
func (b *Bot) State() models.RunState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bot) setState(s models.RunState) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
	log.Debug().Str("state", string(s)).Msg("Run state changed")
}

// stage is one step of a run.
type stage struct {
	name string
	fn   func(ctx context.Context) error
}

// stages returns the fixed ordered stage list for a mode.
func (b *Bot) stages(mode models.RunMode) []stage {
	morning := []stage{
		{"morning_scripture", b.MorningScripture},
		{"ecosystem_news", b.EcosystemNewsPost},
		{"trending_coins", b.TrendingCoinsPost},
		{"upcoming_projects", b.UpcomingProjectsPost},
	}
	insights := []stage{
		{"market_analysis", b.MarketAnalysisPost},
		{"bnb_insight", b.InsightPost},
		{"security_tip", b.SecurityTipPost},
		{"educational", b.EducationalPost},
		{"market_verse", b.MarketVerse},
	}
	interactions := []stage{
		{"interactions", func(ctx context.Context) error {
			_, err := b.Interactions(ctx)
			return err
		}},
	}

	switch mode {
	case models.ModeMorning:
		return morning
	case models.ModeInsights:
		return insights
	case models.ModeInteractions:
		return interactions
	case models.ModeFull:
		all := append([]stage{}, morning...)
		all = append(all, insights...)
		return append(all, interactions...)
	default:
		return nil
	}
}

// Run executes the stage list for the mode. The run lock serializes
// overlapping invocations; a held lock fails the run immediately. The
// first stage error ends the run as Failed, and the next scheduled
// invocation is the retry.
func (b *Bot) Run(ctx context.Context, mode models.RunMode) error {
	log.Info().Str("mode", string(mode)).Msg("Starting run")
	b.setState(models.StateIdle)

	if b.locker != nil {
		if err := b.locker.AcquireRunLock(ctx, runLockName, b.cfg.RunLockTTL); err != nil {
			b.setState(models.StateFailed)
			if errors.Is(err, models.ErrRunInProgress) {
				log.Warn().Msg("Run lock held, skipping")
				return err
			}
			return fmt.Errorf("acquiring run lock: %w", err)
		}
		defer func() {
			if err := b.locker.ReleaseRunLock(context.WithoutCancel(ctx), runLockName); err != nil {
				log.Warn().Err(err).Msg("Failed to release run lock")
			}
		}()
	}

	stages := b.stages(mode)
	if stages == nil {
		b.setState(models.StateFailed)
		return fmt.Errorf("unknown run mode %q", mode)
	}

	completed := 0
	for _, st := range stages {
		if err := b.runStage(ctx, st); err != nil {
			b.setState(models.StateFailed)
			log.Error().Err(err).
				Str("mode", string(mode)).
				Str("stage", st.name).
				Int("completed", completed).
				Msg("Run failed")
			return fmt.Errorf("stage %s: %w", st.name, err)
		}
		completed++
	}

	b.setState(models.StateDone)
	log.Info().Str("mode", string(mode)).Int("stages", completed).Msg("Run completed")
	return nil
}

func (b *Bot) runStage(ctx context.Context, st stage) error {
	log.Info().Str("stage", st.name).Msg("Running stage")
	return st.fn(ctx)
}

// publish moves through the Publishing state and normalizes the result.
func (b *Bot) publish(ctx context.Context, draft models.PostDraft) error {
	b.setState(models.StatePublishing)
	result := b.publisher.Publish(ctx, draft)
	if result.Err != nil {
		return result.Err
	}
	log.Info().
		Str("kind", string(draft.Kind)).
		Strs("post_ids", result.PostIDs).
		Msg("Stage published")
	return nil
}

// versePair fetches the English and Chinese renderings of a reference.
// Either side may come back nil; both missing is an error.
func (b *Bot) versePair(ctx context.Context, ref models.VerseReference) (en, zh models.VerseText, err error) {
	if v, verr := b.bible.GetVerse(ctx, ref, bible.LangEnglish); verr != nil {
		log.Warn().Err(verr).Str("ref", ref.String()).Msg("English verse unavailable")
	} else {
		en = *v
	}
	if v, verr := b.bible.GetVerse(ctx, ref, bible.LangChinese); verr != nil {
		log.Warn().Err(verr).Str("ref", ref.String()).Msg("Chinese verse unavailable")
	} else {
		zh = *v
	}
	if en.Text == "" && zh.Text == "" {
		return en, zh, fmt.Errorf("verse %s: %w", ref, models.ErrProviderUnavailable)
	}
	return en, zh, nil
}

// MorningScripture posts the day-theme verse as an English and Chinese
// thread.
func (b *Bot) MorningScripture(ctx context.Context) error {
	b.setState(models.StateSelectingVerse)
	now := b.now().UTC()
	theme := config.ThemeForDay(now.Weekday())
	ref := verses.VerseForThemeAt(theme, now.YearDay())
	log.Info().Str("theme", theme).Str("ref", ref.String()).Msg("Selected morning verse")

	en, zh, err := b.versePair(ctx, ref)
	if err != nil {
		return err
	}

	b.setState(models.StateComposing)
	draft, err := compose.VerseThread(en, zh)
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// MarketVerse posts a verse chosen for current market conditions, with
// a market context line when a snapshot is available.
func (b *Bot) MarketVerse(ctx context.Context) error {
	snap := b.snapshot(ctx)

	b.setState(models.StateSelectingVerse)
	signal := signalForMarket(snap)
	ref := b.selector.SelectVerse(ctx, signal)
	log.Info().Str("signal", signal).Str("ref", ref.String()).Msg("Selected market verse")

	en, zh, err := b.versePair(ctx, ref)
	if err != nil {
		return err
	}

	b.setState(models.StateComposing)
	draft, err := compose.MarketVerse(en, zh, snap)
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// MarketAnalysisPost posts the daily market stats.
func (b *Bot) MarketAnalysisPost(ctx context.Context) error {
	b.setState(models.StateComposing)
	draft, err := compose.MarketAnalysis(b.snapshot(ctx))
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// TrendingCoinsPost posts the trending ecosystem tokens.
func (b *Bot) TrendingCoinsPost(ctx context.Context) error {
	tokens, err := b.market.GetTrending(ctx, 10)
	if err != nil {
		log.Warn().Err(err).Msg("Trending data unavailable")
		tokens = nil
	}

	b.setState(models.StateComposing)
	draft, err := compose.TrendingCoins(tokens)
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// EcosystemNewsPost posts the curated news digest.
func (b *Bot) EcosystemNewsPost(ctx context.Context) error {
	b.setState(models.StateComposing)
	draft, err := compose.EcosystemNews(compose.NewsItems)
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// UpcomingProjectsPost posts the curated projects list.
func (b *Bot) UpcomingProjectsPost(ctx context.Context) error {
	b.setState(models.StateComposing)
	draft, err := compose.UpcomingProjects(compose.Projects)
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// InsightPost posts the day's fundamentals one-liner.
func (b *Bot) InsightPost(ctx context.Context) error {
	b.setState(models.StateComposing)
	draft, err := compose.Insight(b.now().UTC().YearDay())
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// SecurityTipPost posts the day's security tip.
func (b *Bot) SecurityTipPost(ctx context.Context) error {
	b.setState(models.StateComposing)
	draft, err := compose.SecurityTip(b.now().UTC().YearDay())
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// EducationalPost posts the day's educational topic.
func (b *Bot) EducationalPost(ctx context.Context) error {
	b.setState(models.StateComposing)
	draft, err := compose.Educational(b.now().UTC().YearDay())
	if err != nil {
		return err
	}
	return b.publish(ctx, draft)
}

// Interactions reads the target accounts and replies with a themed
// verse, at most one reply per account, bounded by the read quota and
// the daily interactions cap. Returns the number of replies posted.
func (b *Bot) Interactions(ctx context.Context) (int, error) {
	interactions := 0

	for _, acct := range config.TargetAccounts {
		if interactions >= b.cfg.Limits.MaxInteractionsDay {
			break
		}
		if !b.quota.CanRead(1) {
			log.Warn().Msg("Read quota exhausted, stopping interactions")
			break
		}

		tweets, err := b.reader.GetUserTweets(ctx, acct.UserID, 5)
		if err != nil {
			log.Warn().Err(err).Str("handle", acct.Handle).Msg("Failed to read account")
			continue
		}
		b.quota.RecordReads(ctx, 1)

		for _, tweet := range tweets {
			if !b.shouldReply(ctx, tweet.Text) {
				continue
			}

			id, err := b.replyWithVerse(ctx, tweet)
			if errors.Is(err, models.ErrQuotaExceeded) {
				log.Warn().Msg("Post quota exhausted, stopping interactions")
				return interactions, nil
			}
			if err != nil {
				log.Warn().Err(err).Str("handle", acct.Handle).Msg("Reply failed")
				continue
			}

			interactions++
			log.Info().Str("handle", acct.Handle).Str("post_id", id).Msg("Replied with verse")
			break
		}
	}

	return interactions, nil
}

func (b *Bot) replyWithVerse(ctx context.Context, tweet models.Tweet) (string, error) {
	theme := b.themeFor(ctx, tweet.Text)
	ref := verses.VerseForThemeAt(theme, b.now().UTC().YearDay())

	v, err := b.bible.GetVerse(ctx, ref, bible.LangEnglish)
	if err != nil {
		return "", err
	}

	return b.publisher.PublishReply(ctx, compose.Reply(*v), tweet.ID)
}

// shouldReply screens a tweet with the language model, keyword scan on
// fallback.
func (b *Bot) shouldReply(ctx context.Context, text string) bool {
	if b.analyzer != nil {
		if relevant, err := b.analyzer.IsRelevant(ctx, text); err == nil {
			return relevant
		}
	}
	lowered := strings.ToLower(text)
	for _, kw := range []string{"bnb", "bsc", "binance", "crypto", "bitcoin", "blockchain", "defi"} {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// themeFor classifies a tweet with the language model, keyword scan on
// fallback.
func (b *Bot) themeFor(ctx context.Context, text string) string {
	if b.analyzer != nil {
		if theme, err := b.analyzer.AnalyzeTheme(ctx, text); err == nil {
			return theme
		}
	}
	return verses.ThemeForSignal(text)
}

// snapshot fetches market data, tolerating failure. Composition
// degrades around a nil snapshot.
func (b *Bot) snapshot(ctx context.Context) *models.MarketSnapshot {
	snap, err := b.market.GetSnapshot(ctx, b.cfg.CoinID)
	if err != nil {
		log.Warn().Err(err).Str("coin", b.cfg.CoinID).Msg("Market snapshot unavailable")
		return nil
	}
	return snap
}

// signalForMarket renders the snapshot as a short market signal for
// verse selection.
func signalForMarket(snap *models.MarketSnapshot) string {
	if snap == nil {
		return "uncertain market conditions, trust through volatility"
	}
	chg := snap.Change24hPct
	switch {
	case chg > 5:
		return fmt.Sprintf("BNB bullish surge, strong recovery, up %.2f%% in 24h", chg)
	case chg > 0:
		return fmt.Sprintf("BNB trading higher with hope, up %.2f%% in 24h", chg)
	case chg > -5:
		return fmt.Sprintf("BNB drifting lower, patience in a pullback, down %.2f%% in 24h", -chg)
	case chg > -10:
		return fmt.Sprintf("BNB under pressure, endure the drawdown, down %.2f%% in 24h", -chg)
	default:
		return fmt.Sprintf("BNB sharp drop, fear in the market, down %.2f%% in 24h", -chg)
	}
}
