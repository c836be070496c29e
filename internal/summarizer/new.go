package summarizer

import (
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
)

type implSummarizer struct {
	provider provider
	logger   logger.Logger
}

// New selects the summary provider. An explicit summary.provider wins;
// otherwise OpenRouter, Claude, OpenAI and Gemini are tried in that order
// and the mock provider is used when no credential is configured.
func New(cfg *config.Config, log logger.Logger) Summarizer {
	return &implSummarizer{
		provider: selectProvider(cfg, log),
		logger:   log,
	}
}

func selectProvider(cfg *config.Config, log logger.Logger) provider {
	creds := cfg.Credentials
	sc := cfg.Summary
	temperature := sc.TemperatureValue()

	switch strings.ToLower(sc.Provider) {
	case "openrouter":
		return newOpenRouterProvider(creds.OpenRouterAPIKey, sc.Model, sc.MaxTokens, temperature)
	case "claude", "anthropic":
		return newClaudeProvider(creds.ClaudeAPIKey, "", sc.Model, sc.MaxTokens, temperature)
	case "openai":
		return newOpenAIProvider(creds.OpenAIAPIKey, "", sc.Model, sc.MaxTokens, temperature)
	case "gemini":
		return newGeminiProvider(creds.GeminiAPIKeys, sc.Model, temperature, log)
	case "mock":
		return mockProvider{}
	}

	switch {
	case creds.OpenRouterAPIKey != "":
		return newOpenRouterProvider(creds.OpenRouterAPIKey, sc.Model, sc.MaxTokens, temperature)
	case creds.ClaudeAPIKey != "":
		return newClaudeProvider(creds.ClaudeAPIKey, "", sc.Model, sc.MaxTokens, temperature)
	case creds.OpenAIAPIKey != "":
		return newOpenAIProvider(creds.OpenAIAPIKey, "", sc.Model, sc.MaxTokens, temperature)
	case len(creds.GeminiAPIKeys) > 0:
		return newGeminiProvider(creds.GeminiAPIKeys, sc.Model, temperature, log)
	default:
		return mockProvider{}
	}
}
