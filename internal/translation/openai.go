package translation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultGroqEndpoint is Groq's OpenAI-compatible API root.
	DefaultGroqEndpoint = "https://api.groq.com/openai/v1"
	// DefaultGroqModel is a fast instruction model available on the free tier.
	DefaultGroqModel = "llama-3.1-8b-instant"
	// DefaultLocalEndpoint points to a local OpenAI-compatible server (llama.cpp, Ollama, vLLM).
	DefaultLocalEndpoint = "http://127.0.0.1:11434/v1"

	chatTemperature = 0.3
	chatMaxTokens   = 500
)

// ChatProvider translates through an OpenAI-compatible chat completions API.
type ChatProvider struct {
	name   string
	model  string
	client *openai.Client
}

// ChatOptions configures a ChatProvider.
type ChatOptions struct {
	Name     string
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// NewGroqProvider builds the Groq provider.
func NewGroqProvider(apiKey, endpoint, model string, timeout time.Duration) *ChatProvider {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultGroqEndpoint
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGroqModel
	}
	return NewChatProvider(ChatOptions{
		Name:     "groq",
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		Timeout:  timeout,
	})
}

// NewLocalProvider builds a provider for a keyless local endpoint.
func NewLocalProvider(endpoint, model string, timeout time.Duration) *ChatProvider {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultLocalEndpoint
	}
	return NewChatProvider(ChatOptions{
		Name:     "local",
		Endpoint: endpoint,
		Model:    model,
		Timeout:  timeout,
	})
}

func NewChatProvider(opts ChatOptions) *ChatProvider {
	config := openai.DefaultConfig(strings.TrimSpace(opts.APIKey))
	config.BaseURL = strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")

	httpClient := &http.Client{}
	if opts.Timeout > 0 {
		httpClient.Timeout = opts.Timeout
	}
	config.HTTPClient = httpClient

	return &ChatProvider{
		name:   normalizeProviderName(opts.Name),
		model:  strings.TrimSpace(opts.Model),
		client: openai.NewClientWithConfig(config),
	}
}

func (p *ChatProvider) Name() string {
	return p.name
}

// ModelName returns the configured model identifier.
func (p *ChatProvider) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *ChatProvider) Complete(ctx context.Context, prompt Prompt) (string, error) {
	if p == nil {
		return "", fmt.Errorf("chat provider is nil")
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s api status %d: %s", p.name, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("%s chat completion: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", newError(ErrMalformedResponse, "The translation service returned no result", fmt.Errorf("%s response missing choices", p.name))
	}
	return resp.Choices[0].Message.Content, nil
}
