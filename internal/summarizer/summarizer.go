package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Summarize validates the transcript, builds the prompt for the requested
// style and calls the selected provider.
func (s *implSummarizer) Summarize(ctx context.Context, transcript string, opts Options) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}
	if opts.Style == "" {
		opts.Style = StyleBrief
	}

	startTime := time.Now()
	s.logger.Info(ctx, "Summarizing %d characters with %s (style: %s)", len(transcript), s.provider.name(), opts.Style)

	summary, err := s.provider.summarize(ctx, buildPrompt(transcript, opts), opts)
	if err != nil {
		s.logger.Error(ctx, "Summarization failed with %s: %v", s.provider.name(), err)
		return "", fmt.Errorf("generate summary with %s: %w", s.provider.name(), err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("generate summary with %s: empty response", s.provider.name())
	}

	s.logger.Info(ctx, "Summary generated in %s", time.Since(startTime).Round(time.Millisecond))
	return summary, nil
}

func (s *implSummarizer) Name() string {
	return s.provider.name()
}
