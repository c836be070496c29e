package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"google.golang.org/genai"
)

type geminiProvider struct {
	apiKeys     []string
	model       string
	temperature float32
	logger      logger.Logger

	mu         sync.Mutex
	currentKey int
}

func newGeminiProvider(apiKeys []string, model string, temperature float32, log logger.Logger) *geminiProvider {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &geminiProvider{
		apiKeys:     apiKeys,
		model:       model,
		temperature: temperature,
		logger:      log,
	}
}

func (g *geminiProvider) name() string { return "Gemini" }

// summarize rotates API keys on 429 / quota errors
func (g *geminiProvider) summarize(ctx context.Context, prompt string, opts Options) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	temperature := g.temperature
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temperature,
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiProvider) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless another caller already did
func (g *geminiProvider) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}
