package transcriber

import (
	"context"
	"errors"
)

var (
	ErrTranscriptionRequest = errors.New("transcription request failed")
	ErrNoTranscript         = errors.New("no transcript in response")
	ErrNoBackend            = errors.New("no transcription backend configured")
)

// Unit is one named piece of audio submitted to a backend
type Unit struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Options are passed through to the recognition service
type Options struct {
	Language    string
	Model       string
	SmartFormat bool
	Punctuate   bool
}

// Backend converts audio to text with a remote speech-to-text service
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, unit Unit, opts Options) (string, error)
}
