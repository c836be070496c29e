package chunker

import (
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/pkg/ffmpeg"
)

// Options controls how segments are encoded
type Options struct {
	AudioCodec   string
	AudioBitrate string
	LoadTimeout  time.Duration
}

type implEngine struct {
	runtime     ffmpeg.Runtime
	opts        Options
	logger      logger.Logger
	initialized bool
}

// New creates an Engine that owns rt
func New(rt ffmpeg.Runtime, opts Options, log logger.Logger) Engine {
	if opts.AudioCodec == "" {
		opts.AudioCodec = "aac"
	}
	if opts.AudioBitrate == "" {
		opts.AudioBitrate = "128k"
	}
	return &implEngine{
		runtime: rt,
		opts:    opts,
		logger:  log,
	}
}
