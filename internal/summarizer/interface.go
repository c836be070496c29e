package summarizer

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyTranscript = errors.New("transcript cannot be empty")

// Style selects the shape of the summary
type Style string

const (
	StyleBrief  Style = "brief"
	StyleBullet Style = "bullet"
	StyleAction Style = "action"
)

// ParseStyle maps s to a Style, falling back to StyleBrief
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleBullet:
		return StyleBullet
	case StyleAction:
		return StyleAction
	default:
		return StyleBrief
	}
}

type Options struct {
	Style     Style
	MaxLength int
}

// Summarizer turns a meeting transcript into an LLM-generated summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string, opts Options) (string, error)
	Name() string
}

// provider is one LLM backend. Input validation and error wrapping
// happen in the Summarizer that wraps it.
type provider interface {
	name() string
	summarize(ctx context.Context, prompt string, opts Options) (string, error)
}
