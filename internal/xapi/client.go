// Package xapi provides a client for the X (Twitter) v2 API.
package xapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/models"
)

const (
	// DefaultBaseURL is the X API v2 base URL.
	DefaultBaseURL = "https://api.twitter.com/2"
)

// Client posts tweets and reads user timelines.
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

// NewClient creates a new X API client authenticated with a bearer token.
func NewClient(bearerToken string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(30 * time.Second).
			SetAuthToken(bearerToken).
			SetHeader("Content-Type", "application/json"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// tweetRequest is the POST /tweets payload.
type tweetRequest struct {
	Text  string `json:"text"`
	Reply *struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply,omitempty"`
}

// tweetResponse is the POST /tweets result.
type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Post publishes one tweet, optionally as a reply, and returns its id.
func (c *Client) Post(ctx context.Context, text, inReplyTo string) (string, error) {
	payload := tweetRequest{Text: text}
	if inReplyTo != "" {
		payload.Reply = &struct {
			InReplyToTweetID string `json:"in_reply_to_tweet_id"`
		}{InReplyToTweetID: inReplyTo}
	}

	log.Debug().
		Str("in_reply_to", inReplyTo).
		Int("chars", len([]rune(text))).
		Msg("Posting tweet")

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/tweets")

	if err != nil {
		return "", fmt.Errorf("failed to post tweet: %w: %v", models.ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != 201 {
		return "", fmt.Errorf("tweets API returned %d: %s: %w", resp.StatusCode(), resp.String(), models.ErrProviderUnavailable)
	}

	var tr tweetResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		return "", fmt.Errorf("failed to parse tweet response: %w", models.ErrParseFailure)
	}
	if tr.Data.ID == "" {
		return "", fmt.Errorf("tweet response has no id: %w", models.ErrParseFailure)
	}

	log.Info().Str("id", tr.Data.ID).Msg("Tweet posted")
	return tr.Data.ID, nil
}

// timelineResponse is the GET /users/{id}/tweets payload.
type timelineResponse struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
}

// GetUserTweets returns recent original tweets for a user, excluding
// retweets and replies. The API requires max_results between 5 and 100.
func (c *Client) GetUserTweets(ctx context.Context, userID string, maxResults int) ([]models.Tweet, error) {
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > 100 {
		maxResults = 100
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"max_results":  strconv.Itoa(maxResults),
			"tweet.fields": "created_at,public_metrics",
			"exclude":      "retweets,replies",
		}).
		Get("/users/" + userID + "/tweets")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch tweets: %w: %v", models.ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("timeline API returned %d: %w", resp.StatusCode(), models.ErrProviderUnavailable)
	}

	var tl timelineResponse
	if err := json.Unmarshal(resp.Body(), &tl); err != nil {
		return nil, fmt.Errorf("failed to parse timeline: %w", models.ErrParseFailure)
	}

	tweets := make([]models.Tweet, 0, len(tl.Data))
	for _, t := range tl.Data {
		tweets = append(tweets, models.Tweet{
			ID:        t.ID,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
		})
	}

	log.Debug().Str("user", userID).Int("count", len(tweets)).Msg("Fetched user tweets")
	return tweets, nil
}
