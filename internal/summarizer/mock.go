package summarizer

import (
	"context"
	"fmt"
	"strings"
)

// mockProvider returns a canned summary so the pipeline runs without
// any LLM credentials.
type mockProvider struct{}

func (mockProvider) name() string { return "Mock" }

func (mockProvider) summarize(_ context.Context, prompt string, opts Options) (string, error) {
	words := len(strings.Fields(prompt))

	switch opts.Style {
	case StyleBullet:
		return fmt.Sprintf(`Meeting Summary (mock)

- Key topics from a prompt of %d words were discussed
- Decisions were recorded for follow-up
- Next meeting to be scheduled`, words), nil
	case StyleAction:
		return `Action Items (mock)

1. Review the meeting notes
2. Follow up on open decisions
3. Schedule the next meeting`, nil
	default:
		return fmt.Sprintf("This is a mock summary of a meeting prompt with %d words. "+
			"Configure OPENROUTER_API_KEY, OPENAI_API_KEY or GEMINI_API_KEYS for real summaries.", words), nil
	}
}
