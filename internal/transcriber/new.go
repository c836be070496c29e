package transcriber

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/config"
)

// New selects a Backend once at startup. An explicit
// transcription.provider wins; otherwise the first available credential
// decides, Deepgram before OpenAI.
func New(cfg *config.Config) (Backend, error) {
	creds := cfg.Credentials

	switch strings.ToLower(cfg.Transcription.Provider) {
	case "deepgram":
		if creds.DeepgramAPIKey == "" {
			return nil, fmt.Errorf("deepgram provider selected but DEEPGRAM_API_KEY is missing")
		}
		return NewDeepgram(creds.DeepgramAPIKey, cfg.Transcription.BaseURL), nil
	case "openai":
		if creds.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY is missing")
		}
		return NewWhisper(creds.OpenAIAPIKey, cfg.Transcription.BaseURL), nil
	case "":
	default:
		return nil, fmt.Errorf("unknown transcription provider: %s", cfg.Transcription.Provider)
	}

	if creds.DeepgramAPIKey != "" {
		return NewDeepgram(creds.DeepgramAPIKey, cfg.Transcription.BaseURL), nil
	}
	if creds.OpenAIAPIKey != "" {
		return NewWhisper(creds.OpenAIAPIKey, cfg.Transcription.BaseURL), nil
	}
	return nil, ErrNoBackend
}
