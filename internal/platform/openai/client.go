package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

const (
	DefaultOpenAIModel = "gpt-3.5-turbo"

	DefaultGeminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultGeminiModel      = "gemini-2.5-flash"
	DefaultGeminiEmbedModel = "text-embedding-004"

	DefaultTimeout = 60 * time.Second
)

var errMissingAPIKey = errors.New("missing api key")

// Config describes one OpenAI-compatible endpoint. Gemini is reached through its
// OpenAI-compatible base URL, so both providers share this client.
type Config struct {
	Name       string
	APIKey     string
	BaseURL    string
	Model      string
	EmbedModel string
	Timeout    time.Duration
	// JSONMode requests response_format=json_object on structured calls.
	JSONMode bool
}

// Client is the chat + embeddings surface used by the AI modules.
type Client interface {
	Name() string
	// Complete sends prompt as a single user message and returns the first choice's text.
	Complete(ctx context.Context, prompt string, structured bool) (string, error)
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

type client struct {
	api *goopenai.Client
	cfg Config
	log *logger.Logger
}

func OpenAIConfig(apiKey, baseURL, model string, timeout time.Duration) Config {
	if strings.TrimSpace(model) == "" {
		model = DefaultOpenAIModel
	}
	return Config{
		Name:     "openai",
		APIKey:   apiKey,
		BaseURL:  baseURL,
		Model:    model,
		Timeout:  timeout,
		JSONMode: true,
	}
}

func GeminiConfig(apiKey, baseURL, model, embedModel string, timeout time.Duration) Config {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	if strings.TrimSpace(embedModel) == "" {
		embedModel = DefaultGeminiEmbedModel
	}
	return Config{
		Name:       "gemini",
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      model,
		EmbedModel: embedModel,
		Timeout:    timeout,
	}
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Name, errMissingAPIKey)
	}
	if cfg.Name == "" {
		cfg.Name = "openai"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		apiCfg.BaseURL = base
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &client{
		api: goopenai.NewClientWithConfig(apiCfg),
		cfg: cfg,
		log: log.With("client", "openai", "provider", cfg.Name),
	}, nil
}

func (c *client) Name() string { return c.cfg.Name }

func (c *client) Complete(ctx context.Context, prompt string, structured bool) (string, error) {
	op := c.cfg.Name + ".Complete"
	req := goopenai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if structured && c.cfg.JSONMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Warn("chat completion failed", "model", c.cfg.Model, "error", err, "duration", time.Since(start))
		return "", apperrors.Wrap(apperrors.KindProviderUnavailable, op, err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.KindProviderUnavailable, op, "no choices returned")
	}
	c.log.Debug("chat completion",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"duration", time.Since(start),
	)
	return resp.Choices[0].Message.Content, nil
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	op := c.cfg.Name + ".Embed"
	if c.cfg.EmbedModel == "" {
		return nil, apperrors.New(apperrors.KindProviderUnavailable, op, "no embedding model configured")
	}
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}

	resp, err := c.api.CreateEmbeddings(ctx, goopenai.EmbeddingRequestStrings{
		Input: inputs,
		Model: goopenai.EmbeddingModel(c.cfg.EmbedModel),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindProviderUnavailable, op, err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, apperrors.New(apperrors.KindProviderUnavailable, op,
			fmt.Sprintf("expected %d embeddings, got %d", len(inputs), len(resp.Data)))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })
	out := make([][]float32, len(data))
	for i, d := range data {
		out[i] = d.Embedding
	}
	return out, nil
}
