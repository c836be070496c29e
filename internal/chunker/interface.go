package chunker

import (
	"context"

	"github.com/nguyentantai21042004/recap-flow/internal/media"
)

// Output format of every chunk
const (
	OutputExt  = ".m4a"
	OutputMIME = "audio/mp4"
)

// DefaultTargetDuration is used when Chunk is given a non-positive target
const DefaultTargetDuration = 300.0

// Chunk is one re-encoded audio segment. Times are in seconds.
type Chunk struct {
	Payload   []byte
	StartTime float64
	EndTime   float64
}

// Duration returns the length of the chunk in seconds
func (c Chunk) Duration() float64 {
	return c.EndTime - c.StartTime
}

// Engine splits one media file at a time into contiguous audio chunks.
// It owns its runtime and must not be shared between concurrent runs.
type Engine interface {
	Initialize(ctx context.Context) error
	Chunk(ctx context.Context, file media.File, targetSeconds float64) ([]Chunk, error)
	Close() error
}

// Factory creates a fresh Engine for each run
type Factory func() Engine
