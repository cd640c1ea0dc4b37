// versebotd runs the posting schedule and the HTTP status surface.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/api"
	"github.com/gracechain/versebot/internal/bible"
	"github.com/gracechain/versebot/internal/bot"
	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/llm"
	"github.com/gracechain/versebot/internal/market"
	"github.com/gracechain/versebot/internal/publisher"
	"github.com/gracechain/versebot/internal/scheduler"
	"github.com/gracechain/versebot/internal/storage"
	"github.com/gracechain/versebot/internal/verses"
	"github.com/gracechain/versebot/internal/xapi"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("versebotd - Starting")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Initialize storage
	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer store.Close(ctx)

	// Load the usage ledger
	usage, err := store.LoadUsage(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load usage ledger")
	}
	quota := publisher.NewQuota(usage, cfg.Limits, store)
	log.Info().
		Int("posts_used", usage.PostsUsed).
		Int("reads_used", usage.ReadsUsed).
		Str("month", usage.Month).
		Msg("Usage ledger loaded")

	// Initialize clients
	xClient := xapi.NewClient(cfg.XBearerToken)
	pub := publisher.NewPublisher(xClient, quota, store)

	llmClient := llm.NewClient(llm.Config{
		Endpoint: cfg.OllamaEndpoint,
		Model:    cfg.OllamaModel,
	})
	log.Info().Str("model", cfg.OllamaModel).Msg("LLM client initialized")

	// Initialize the bot
	b := bot.New(cfg, bot.Deps{
		Bible: bible.NewClient(
			bible.WithBaseURL(cfg.BibleAPIBase),
			bible.WithChineseTranslation(cfg.ChineseTranslation),
		),
		Market:    market.NewClient(),
		Selector:  verses.NewSelector(verses.WithSuggester(llmClient)),
		Analyzer:  llmClient,
		Publisher: pub,
		Reader:    xClient,
		Quota:     quota,
		Locker:    store,
	})
	log.Info().Msg("Bot initialized")

	// Initialize scheduler
	sched := scheduler.NewScheduler(b)
	log.Info().Msg("Scheduler initialized")

	// Initialize API server
	apiServer := api.NewServer(store, quota, b, sched, cfg)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start all services
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("API server error")
		}
	}()

	sched.Start()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Msg("versebotd running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	shutdownCtx := context.Background()
	sched.Stop()
	apiServer.Shutdown(shutdownCtx)

	log.Info().Msg("versebotd stopped")
}
