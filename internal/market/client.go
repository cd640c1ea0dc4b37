// Package market provides a client for the CoinGecko public API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/models"
)

const (
	// DefaultBaseURL is the CoinGecko v3 API base URL.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"
)

// bscTokens are the ecosystem coin ids considered for trending lists.
var bscTokens = []string{
	"binancecoin", "pancakeswap-token", "trust-wallet-token", "venus",
	"alpaca-finance", "beefy-finance", "bakeryswap", "burger-swap",
	"dodo", "ellipsis", "mdex", "safemoon", "swipe", "bscpad",
	"bscstarter", "goose-finance", "jetswap", "knightswap", "moonpot",
}

// Client provides access to CoinGecko market data.
type Client struct {
	http *resty.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

// NewClient creates a new CoinGecko client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(3).
			SetRetryWaitTime(1 * time.Second),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// coinDetail is the subset of /coins/{id} the bot consumes.
type coinDetail struct {
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
	} `json:"market_data"`
}

// GetSnapshot fetches a full market snapshot for one coin.
func (c *Client) GetSnapshot(ctx context.Context, coinID string) (*models.MarketSnapshot, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"localization":   "false",
			"tickers":        "false",
			"market_data":    "true",
			"community_data": "false",
			"developer_data": "false",
			"sparkline":      "false",
		}).
		Get("/coins/" + coinID)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch coin %s: %w: %v", coinID, models.ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("coins API returned %d: %w", resp.StatusCode(), models.ErrProviderUnavailable)
	}

	var detail coinDetail
	if err := json.Unmarshal(resp.Body(), &detail); err != nil {
		return nil, fmt.Errorf("failed to parse coin detail: %w", models.ErrParseFailure)
	}

	snapshot := &models.MarketSnapshot{
		Symbol:       strings.ToUpper(detail.Symbol),
		PriceUSD:     detail.MarketData.CurrentPrice["usd"],
		Change24hPct: detail.MarketData.PriceChangePercentage24h,
		Volume24hUSD: detail.MarketData.TotalVolume["usd"],
		MarketCapUSD: detail.MarketData.MarketCap["usd"],
		High24hUSD:   detail.MarketData.High24h["usd"],
		Low24hUSD:    detail.MarketData.Low24h["usd"],
		FetchedAt:    time.Now().UTC(),
	}

	log.Debug().
		Str("coin", coinID).
		Float64("price", snapshot.PriceUSD).
		Float64("change_24h", snapshot.Change24hPct).
		Msg("Fetched market snapshot")

	return snapshot, nil
}

// trendingResponse is the /search/trending payload.
type trendingResponse struct {
	Coins []struct {
		Item struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			MarketCapRank int    `json:"market_cap_rank"`
		} `json:"item"`
	} `json:"coins"`
}

// GetTrending returns trending ecosystem tokens, topped up with the top
// ecosystem coins by market cap when global trending has too few matches.
func (c *Client) GetTrending(ctx context.Context, limit int) ([]models.TrendingToken, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/search/trending")

	if err != nil {
		return c.GetTopBSCCoins(ctx, limit)
	}

	if resp.StatusCode() != 200 {
		return c.GetTopBSCCoins(ctx, limit)
	}

	var trending trendingResponse
	if err := json.Unmarshal(resp.Body(), &trending); err != nil {
		return nil, fmt.Errorf("failed to parse trending: %w", models.ErrParseFailure)
	}

	ecosystem := map[string]bool{}
	for _, id := range bscTokens {
		ecosystem[id] = true
	}

	var tokens []models.TrendingToken
	for _, coin := range trending.Coins {
		if !ecosystem[coin.Item.ID] {
			continue
		}
		tokens = append(tokens, models.TrendingToken{
			ID:            coin.Item.ID,
			Name:          coin.Item.Name,
			Symbol:        strings.ToUpper(coin.Item.Symbol),
			MarketCapRank: coin.Item.MarketCapRank,
		})
		if len(tokens) >= limit {
			break
		}
	}

	if len(tokens) < limit {
		top, err := c.GetTopBSCCoins(ctx, limit-len(tokens))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to top up trending list")
		} else {
			seen := map[string]bool{}
			for _, t := range tokens {
				seen[t.ID] = true
			}
			for _, t := range top {
				if !seen[t.ID] {
					tokens = append(tokens, t)
				}
			}
		}
	}

	if len(tokens) > limit {
		tokens = tokens[:limit]
	}

	log.Debug().Int("count", len(tokens)).Msg("Fetched trending tokens")
	return tokens, nil
}

// marketRow is one /coins/markets entry.
type marketRow struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	MarketCapRank            int     `json:"market_cap_rank"`
}

// GetTopBSCCoins returns the top ecosystem coins by market cap.
func (c *Client) GetTopBSCCoins(ctx context.Context, limit int) ([]models.TrendingToken, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"ids":         strings.Join(bscTokens, ","),
			"order":       "market_cap_desc",
			"per_page":    strconv.Itoa(limit),
			"page":        "1",
			"sparkline":   "false",
		}).
		Get("/coins/markets")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w: %v", models.ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("markets API returned %d: %w", resp.StatusCode(), models.ErrProviderUnavailable)
	}

	var rows []marketRow
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse markets: %w", models.ErrParseFailure)
	}

	tokens := make([]models.TrendingToken, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, models.TrendingToken{
			ID:            row.ID,
			Name:          row.Name,
			Symbol:        strings.ToUpper(row.Symbol),
			PriceUSD:      row.CurrentPrice,
			Change24hPct:  row.PriceChangePercentage24h,
			MarketCapRank: row.MarketCapRank,
		})
	}

	return tokens, nil
}
