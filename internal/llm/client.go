// Package llm provides a client for a local Ollama server.
// Uses the OpenAI-compatible endpoint for chat completions.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/gracechain/versebot/internal/models"
	"github.com/gracechain/versebot/internal/verses"
)

const (
	// Ollama OpenAI-compatible endpoint
	DefaultEndpoint = "http://localhost:11434/v1"

	DefaultModel = "llama3"
)

// Client wraps the OpenAI SDK configured for Ollama.
type Client struct {
	client *openai.Client
	model  string
}

// Config holds the configuration for the LLM client.
type Config struct {
	Endpoint string
	Model    string
}

// NewClient creates a new LLM client. Ollama ignores the API key but the
// SDK requires a non-empty one.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	config := openai.DefaultConfig("ollama")
	config.BaseURL = cfg.Endpoint

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}
}

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// Chat sends a chat completion request and returns the reply text.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{}

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}

	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}

	log.Debug().
		Str("model", c.model).
		Int("messages", len(messages)).
		Msg("Sending chat request to Ollama")

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("ollama chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

// SuggestVerse asks the model for a single Bible reference matching the
// market signal. Any failure, a dead server, an unparseable reply, an
// empty reply, yields Suggestion{OK: false} so callers fall back to
// their own tables.
func (c *Client) SuggestVerse(ctx context.Context, signal string) verses.Suggestion {
	systemPrompt := `You suggest Bible verses for cryptocurrency market commentary.
Reply with exactly one verse reference in the form "Book Chapter:Verse",
for example "Proverbs 13:11". No verse text, no explanation.`

	userPrompt := fmt.Sprintf("Market signal: %s\n\nSuggest one fitting Bible verse reference.", signal)

	content, err := c.Chat(ctx, ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  0.3,
		MaxTokens:    50,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Verse suggestion failed, falling back")
		return verses.Suggestion{}
	}

	ref, err := models.ParseReference(content)
	if err != nil {
		log.Warn().Str("reply", content).Msg("Verse suggestion unparseable, falling back")
		return verses.Suggestion{}
	}

	return verses.Suggestion{Ref: ref, OK: true}
}

// AnalyzeTheme maps free text to one of the known themes. Unknown or
// failed replies come back as an error so the caller can run its own
// keyword analysis.
func (c *Client) AnalyzeTheme(ctx context.Context, text string) (string, error) {
	systemPrompt := `You classify text into exactly one theme from this list:
hope, wisdom, perseverance, faith, love, peace, gratitude, strength, joy,
grace, patience, market_crash, crypto, finance.
Reply with the single theme word only.`

	content, err := c.Chat(ctx, ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   text,
		Temperature:  0.1,
		MaxTokens:    10,
	})
	if err != nil {
		return "", err
	}

	theme := strings.ToLower(strings.TrimSpace(content))
	theme = strings.Trim(theme, `."'`)
	if !verses.ValidTheme(theme) {
		return "", fmt.Errorf("unknown theme %q", theme)
	}
	return theme, nil
}

// IsRelevant asks the model whether a tweet is worth replying to. Errors
// propagate so the caller can decide whether to skip or fall back.
func (c *Client) IsRelevant(ctx context.Context, text string) (bool, error) {
	systemPrompt := `You screen tweets for a BNB ecosystem commentary account.
Answer "yes" if the tweet concerns BNB Chain, BSC, crypto markets, or
blockchain development, otherwise answer "no". One word only.`

	content, err := c.Chat(ctx, ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   text,
		Temperature:  0.1,
		MaxTokens:    5,
	})
	if err != nil {
		return false, err
	}

	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(content)), "yes"), nil
}
