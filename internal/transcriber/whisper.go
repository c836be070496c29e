package transcriber

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

type whisperBackend struct {
	client *openai.Client
}

// NewWhisper creates a Backend for OpenAI's audio transcription API.
// baseURL overrides the API root, e.g. for a compatible self-hosted server.
func NewWhisper(apiKey, baseURL string) Backend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &whisperBackend{client: openai.NewClientWithConfig(cfg)}
}

func (w *whisperBackend) Name() string { return "openai" }

func (w *whisperBackend) Transcribe(ctx context.Context, unit Unit, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = openai.Whisper1
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: unit.Name,
		Reader:   bytes.NewReader(unit.Data),
		Language: opts.Language,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai %s: %w", ErrTranscriptionRequest, unit.Name, err)
	}
	return resp.Text, nil
}
