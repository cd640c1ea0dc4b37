// versebot runs one posting routine and exits.
// Exit code 0 when the run completes, 1 when it fails.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/bible"
	"github.com/gracechain/versebot/internal/bot"
	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/llm"
	"github.com/gracechain/versebot/internal/market"
	"github.com/gracechain/versebot/internal/models"
	"github.com/gracechain/versebot/internal/publisher"
	"github.com/gracechain/versebot/internal/storage"
	"github.com/gracechain/versebot/internal/verses"
	"github.com/gracechain/versebot/internal/xapi"
)

func main() {
	modeFlag := flag.String("mode", "full", "run mode: morning, insights, interactions, full")
	flag.Parse()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	mode, err := models.ParseRunMode(*modeFlag)
	if err != nil {
		log.Error().Err(err).Msg("Invalid mode")
		os.Exit(1)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	b, store, err := buildBot(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}

	runErr := b.Run(ctx, mode)
	store.Close(context.Background())

	if runErr != nil {
		log.Error().Err(runErr).Str("mode", string(mode)).Msg("Run failed")
		os.Exit(1)
	}
}

// buildBot wires the bot and its collaborators from configuration.
func buildBot(ctx context.Context, cfg *config.Config) (*bot.Bot, *storage.Store, error) {
	store, err := storage.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, nil, err
	}

	usage, err := store.LoadUsage(ctx, time.Now())
	if err != nil {
		store.Close(ctx)
		return nil, nil, err
	}
	quota := publisher.NewQuota(usage, cfg.Limits, store)

	xClient := xapi.NewClient(cfg.XBearerToken)
	pub := publisher.NewPublisher(xClient, quota, store)

	llmClient := llm.NewClient(llm.Config{
		Endpoint: cfg.OllamaEndpoint,
		Model:    cfg.OllamaModel,
	})

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

	return b, store, nil
}
