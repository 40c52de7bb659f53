// Package llm wraps the OpenAI-compatible chat endpoint used for narration
// and autonomous players.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

var (
	// ErrDisabled is returned when no API key is configured
	ErrDisabled = errors.New("llm: generation disabled")
	// ErrCoolingDown is returned while the guard refuses calls
	ErrCoolingDown = errors.New("llm: endpoint cooling down after failures")
	ErrEmptyReply  = errors.New("llm: empty reply")
)

const (
	maxFailures = 3
	cooldown    = 2 * time.Minute
	maxTokens   = 400
)

// Generator turns a prompt into text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config describes one chat endpoint
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
	RPS         float64
}

// Client is a Generator backed by the chat completions API
type Client struct {
	api         openai.Client
	model       string
	temperature float64
	limiter     *rate.Limiter
	guard       *Guard
	log         zerolog.Logger
}

// New returns a Client, or Disabled when cfg has no API key
func New(cfg Config, log zerolog.Logger) Generator {
	if cfg.APIKey == "" {
		log.Info().Msg("no API key configured, generated text falls back to defaults")
		return Disabled{}
	}
	return NewClient(cfg, log)
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	return &Client{
		api:         openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		limiter:     rate.NewLimiter(limit, 1),
		guard:       NewGuard(maxFailures, cooldown),
		log:         log.With().Str("component", "llm").Str("model", cfg.Model).Logger(),
	}
}

// Generate sends prompt as a single user message and returns the trimmed reply
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if st, ok := c.guard.Check(); !ok {
		c.log.Debug().Int("failures", st.Failures).Time("until", st.Until).Msg("skipped while cooling off")
		return "", fmt.Errorf("%w until %s", ErrCoolingDown, st.Until.Format(time.TimeOnly))
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("wait for rate limit: %w", err)
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		c.fail(err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.fail(ErrEmptyReply)
		return "", ErrEmptyReply
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		c.fail(ErrEmptyReply)
		return "", ErrEmptyReply
	}

	c.guard.Succeed()
	c.log.Debug().Dur("took", time.Since(start)).Int("chars", len(text)).Msg("generated")
	return text, nil
}

func (c *Client) fail(err error) {
	st := c.guard.Fail()
	ev := c.log.Warn().Err(err).Int("failures", st.Failures)
	if st.CoolingOff {
		ev = ev.Time("until", st.Until)
	}
	ev.Msg("generation failed")
}

// Disabled never generates anything
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrDisabled
}
