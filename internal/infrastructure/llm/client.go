package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"next-hire/internal/config"
	"next-hire/internal/pkg/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

var (
	ErrMissingAPIKey       = errors.New("llm api key is not configured")
	ErrUnsupportedProvider = errors.New("unsupported llm provider")
	ErrEmptyCompletion     = errors.New("llm returned an empty completion")
)

// Client sends single-prompt completions to the configured model.
type Client struct {
	model  llms.Model
	name   string
	logger *zap.Logger
}

func New(ctx context.Context, cfg config.LLMConfig, l *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	var (
		model llms.Model
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGoogleAI:
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case ProviderOpenAI:
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s client: %w", cfg.Provider, err)
	}

	return NewWithModel(model, cfg.Model, l), nil
}

func NewWithModel(model llms.Model, name string, l *zap.Logger) *Client {
	return &Client{model: model, name: name, logger: logger.OrNop(l)}
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt, llms.WithTemperature(0.2))
	if err != nil {
		c.logger.Error("llm completion failed", zap.String("model", c.name), zap.Error(err))
		return "", fmt.Errorf("llm completion: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyCompletion
	}
	c.logger.Debug("llm completion", zap.String("model", c.name), zap.Int("chars", len(out)))
	return out, nil
}

// Disabled stands in when no API key is configured so the rest of the
// server still boots.
type Disabled struct{}

func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrMissingAPIKey
}
