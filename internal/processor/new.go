package processor

import (
	"github.com/nguyentantai21042004/recap-flow/internal/chunker"
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/export"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
)

type implProcessor struct {
	cfg        *config.Config
	engines    chunker.Factory
	backend    transcriber.Backend
	summarizer summarizer.Summarizer
	store      store.Store
	exporter   export.Exporter
	logger     logger.Logger
}

// New creates a Processor. engines is called once per transcription so
// concurrent runs never share a media runtime.
func New(
	cfg *config.Config,
	engines chunker.Factory,
	backend transcriber.Backend,
	sum summarizer.Summarizer,
	st store.Store,
	exp export.Exporter,
	log logger.Logger,
) Processor {
	return &implProcessor{
		cfg:        cfg,
		engines:    engines,
		backend:    backend,
		summarizer: sum,
		store:      st,
		exporter:   exp,
		logger:     log,
	}
}
