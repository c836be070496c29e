package summarizer

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const (
	openRouterBaseURL      = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "anthropic/claude-3-haiku"
	defaultOpenAIModel     = openai.GPT3Dot5Turbo
)

// chatProvider covers OpenAI and any OpenAI-compatible chat API.
type chatProvider struct {
	label       string
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func newOpenAIProvider(apiKey, baseURL, model string, maxTokens int, temperature float32) *chatProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &chatProvider{
		label:       "OpenAI",
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func newOpenRouterProvider(apiKey, model string, maxTokens int, temperature float32) *chatProvider {
	return newOpenRouterProviderWithURL(apiKey, openRouterBaseURL, model, maxTokens, temperature)
}

func newOpenRouterProviderWithURL(apiKey, baseURL, model string, maxTokens int, temperature float32) *chatProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Transport: &headerTransport{
		base: http.DefaultTransport,
		headers: map[string]string{
			"HTTP-Referer": "https://github.com/nguyentantai21042004/recap-flow",
			"X-Title":      "Recap Flow",
		},
	}}
	if model == "" {
		model = defaultOpenRouterModel
	}
	return &chatProvider{
		label:       "OpenRouter",
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (c *chatProvider) name() string { return c.label }

func (c *chatProvider) summarize(ctx context.Context, prompt string, _ Options) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
