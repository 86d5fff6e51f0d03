package provider

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/eringen/seoblog"
)

// Defaults for the chat completion call.
const (
	DefaultModel     = "gpt-4o"
	DefaultMaxTokens = 3000
)

// Settings configures the OpenAI-compatible adapter.
type Settings struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Brand     Brand
}

// OpenAI generates articles through any OpenAI-compatible chat completions API.
type OpenAI struct {
	Model     string
	MaxTokens int
	Brand     Brand
	Opts      []option.RequestOption
}

// NewOpenAI validates settings and builds the adapter.
func NewOpenAI(cfg Settings) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("provider: api key missing; set llm.api_key or OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Brand.Name == "" {
		cfg.Brand = DefaultBrand
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{Model: cfg.Model, MaxTokens: cfg.MaxTokens, Brand: cfg.Brand, Opts: opts}, nil
}

// Generate sends one prompt and parses the reply. There is no retry; a
// cancelled context aborts the request.
func (o *OpenAI) Generate(ctx context.Context, req seoblog.ContentRequest) (seoblog.GeneratedPost, error) {
	client := openai.NewClient(o.Opts...)
	prompt := BuildPrompt(o.Brand, req)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		MaxTokens: openai.Int(int64(o.MaxTokens)),
	})
	if err != nil {
		return seoblog.GeneratedPost{}, fmt.Errorf("provider: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return seoblog.GeneratedPost{}, fmt.Errorf("%w: empty choices", ErrMalformedResponse)
	}
	return ParseResponse(resp.Choices[0].Message.Content)
}
