package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/position"
)

// Advisor reviews a scored submission and replies with a short take.
type Advisor interface {
	Consult(ctx context.Context, req ConsultRequest) (string, error)
}

// ConsultRequest carries everything the advisor sees.
type ConsultRequest struct {
	Symbol     string
	Setup      *position.Setup
	Assessment *mindset.Assessment
	Question   string
}

// Client implements Advisor against an OpenAI-compatible chat endpoint.
type Client struct {
	cfg          *Config
	openaiClient *openai.Client
}

// ClientOption configures optional client behaviour.
type ClientOption func(*Client)

// WithOpenAIClient injects a pre-configured OpenAI client (primarily for testing).
func WithOpenAIClient(client *openai.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.openaiClient = client
		}
	}
}

// NewClient constructs an advisor client from configuration.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("advisor: config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.openaiClient == nil {
		oaOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			oaOpts = append(oaOpts, option.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Timeout > 0 {
			oaOpts = append(oaOpts, option.WithRequestTimeout(cfg.Timeout))
		}
		if cfg.MaxRetries > 0 {
			oaOpts = append(oaOpts, option.WithMaxRetries(cfg.MaxRetries))
		}
		clientVal := openai.NewClient(oaOpts...)
		c.openaiClient = &clientVal
	}
	return c, nil
}

// Consult sends the rendered prompt and returns the advisor's reply text.
func (c *Client) Consult(ctx context.Context, req ConsultRequest) (string, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return "", err
	}

	completion, err := c.openaiClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("advisor: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("advisor: empty completion")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
