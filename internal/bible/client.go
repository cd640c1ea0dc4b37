// Package bible provides a client for the bible-api.com verse service.
package bible

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/models"
)

const (
	// DefaultBaseURL is the bible-api.com endpoint.
	DefaultBaseURL = "https://bible-api.com"

	// LangEnglish and LangChinese are the two languages the bot posts in.
	LangEnglish = "en"
	LangChinese = "zh"
)

// Client fetches verse text by reference.
type Client struct {
	http          *resty.Client
	zhTranslation string
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(url)
	}
}

// WithChineseTranslation sets the translation id used for Chinese requests.
func WithChineseTranslation(id string) Option {
	return func(c *Client) {
		c.zhTranslation = id
	}
}

// NewClient creates a new Bible API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(30 * time.Second).
			SetRetryCount(3).
			SetRetryWaitTime(1 * time.Second),
		zhTranslation: "cuv",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// verseResponse is the bible-api.com payload.
type verseResponse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// GetVerse fetches the text of a reference in the given language.
// For Chinese, a missing remote translation falls back to the curated
// local corpus before the error is surfaced.
func (c *Client) GetVerse(ctx context.Context, ref models.VerseReference, lang string) (*models.VerseText, error) {
	if ref.IsZero() {
		return nil, fmt.Errorf("empty verse reference")
	}

	req := c.http.R().SetContext(ctx)
	if lang == LangChinese {
		req.SetQueryParam("translation", c.zhTranslation)
	}

	log.Debug().Str("ref", ref.String()).Str("lang", lang).Msg("Fetching verse")

	resp, err := req.Get("/" + ref.String())
	if err != nil {
		if lang == LangChinese {
			if vt := c.localChinese(ref); vt != nil {
				return vt, nil
			}
		}
		return nil, fmt.Errorf("failed to fetch verse %s: %w: %v", ref, models.ErrProviderUnavailable, err)
	}

	if resp.StatusCode() != 200 {
		if lang == LangChinese {
			if vt := c.localChinese(ref); vt != nil {
				return vt, nil
			}
		}
		return nil, fmt.Errorf("verse API returned %d for %s: %w", resp.StatusCode(), ref, models.ErrProviderUnavailable)
	}

	var vr verseResponse
	if err := json.Unmarshal(resp.Body(), &vr); err != nil {
		return nil, fmt.Errorf("failed to parse verse response: %w", models.ErrParseFailure)
	}

	text := strings.TrimSpace(vr.Text)
	if text == "" {
		return nil, fmt.Errorf("verse %s not found: %w", ref, models.ErrProviderUnavailable)
	}

	vt := &models.VerseText{
		Ref:          ref,
		LanguageCode: lang,
		Text:         text,
		Reference:    vr.Reference,
	}
	if vt.Reference == "" {
		vt.Reference = ref.String()
	}
	if lang == LangChinese {
		vt.Reference = ChineseReference(ref)
	}

	return vt, nil
}

// localChinese resolves a reference from the curated translation corpus.
func (c *Client) localChinese(ref models.VerseReference) *models.VerseText {
	text, ok := chineseVerses[ref.String()]
	if !ok {
		return nil
	}
	return &models.VerseText{
		Ref:          ref,
		LanguageCode: LangChinese,
		Text:         text,
		Reference:    ChineseReference(ref),
	}
}

// ChineseReference renders a reference with the Chinese book name.
func ChineseReference(ref models.VerseReference) string {
	book := ref.Book
	if zh, ok := ChineseBooks[bookKey(ref.Book)]; ok {
		book = zh
	}
	if ref.EndVerse > 0 {
		return fmt.Sprintf("%s %d:%d-%d", book, ref.Chapter, ref.Verse, ref.EndVerse)
	}
	return fmt.Sprintf("%s %d:%d", book, ref.Chapter, ref.Verse)
}

func bookKey(book string) string {
	return strings.ReplaceAll(strings.ToLower(book), " ", "")
}
