package models

import "time"

// MarketSnapshot holds market data for one coin at one point in time.
// Fetched fresh per run, never mutated, discarded after composing.
type MarketSnapshot struct {
	Symbol       string    `json:"symbol"`
	PriceUSD     float64   `json:"price_usd"`
	Change24hPct float64   `json:"change_24h_pct"`
	Volume24hUSD float64   `json:"volume_24h_usd"`
	MarketCapUSD float64   `json:"market_cap_usd"`
	High24hUSD   float64   `json:"high_24h_usd"`
	Low24hUSD    float64   `json:"low_24h_usd"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// TrendingToken is one entry of a trending-tokens list.
type TrendingToken struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	PriceUSD      float64 `json:"price_usd"`
	Change24hPct  float64 `json:"change_24h_pct"`
	MarketCapRank int     `json:"market_cap_rank"`
}

// NewsItem is a curated ecosystem news entry.
type NewsItem struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Impact   string `json:"impact"`
}

// Project is an upcoming ecosystem project or investment.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Backer      string `json:"backer"`
	Status      string `json:"status"`
}

// Tweet is a post read back from the platform for the interactions flow.
type Tweet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
