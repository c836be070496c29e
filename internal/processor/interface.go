package processor

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
)

// TextInputName is the display name of a pasted transcript
const TextInputName = "Text Input"

// ProgressFunc receives the share of the media transcribed so far, 0-100
type ProgressFunc func(percent float64)

// TranscribeOptions are per-call settings. Zero values fall back to the
// configured defaults.
type TranscribeOptions struct {
	ChunkDuration float64
	Recognition   transcriber.Options
	Progress      ProgressFunc
}

// Processor runs the recap pipeline: chunk, transcribe, summarize, store
// and export.
type Processor interface {
	// Process handles one file dropped into the input folder
	Process(ctx context.Context, path string) error
	// Transcribe returns the complete ordered transcript of file or an error
	Transcribe(ctx context.Context, file media.File, opts TranscribeOptions) (string, error)
	// Summarize summarizes transcript and stores the result for userID.
	// Zero option fields fall back to the summary config.
	Summarize(ctx context.Context, userID, fileName, transcript string, opts summarizer.Options) (store.Summary, error)
	// Export writes rec to the output folder
	Export(ctx context.Context, rec store.Summary) ([]string, error)
}
