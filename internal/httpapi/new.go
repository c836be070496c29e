package httpapi

import (
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
)

type implServer struct {
	cfg       *config.Config
	processor processor.Processor
	store     store.Store
	logger    logger.Logger
}

// New creates the HTTP API server
func New(cfg *config.Config, proc processor.Processor, st store.Store, log logger.Logger) Server {
	return &implServer{
		cfg:       cfg,
		processor: proc,
		store:     st,
		logger:    log,
	}
}
