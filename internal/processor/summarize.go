package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/recap-flow/internal/export"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

func (p *implProcessor) Summarize(ctx context.Context, userID, fileName, transcript string, opts summarizer.Options) (store.Summary, error) {
	if strings.TrimSpace(fileName) == "" {
		fileName = TextInputName
	}
	if opts.Style == "" {
		opts.Style = summarizer.ParseStyle(p.cfg.Summary.Style)
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = p.cfg.Summary.MaxLength
	}

	summary, err := p.summarizer.Summarize(ctx, transcript, opts)
	if err != nil {
		return store.Summary{}, fmt.Errorf("summarize: %w", err)
	}

	rec, err := p.store.Create(ctx, userID, fileName, transcript, summary)
	if err != nil {
		return store.Summary{}, fmt.Errorf("store summary: %w", err)
	}

	p.logger.Info(ctx, "Stored summary %s for %s (%s)", rec.ID, userID, fileName)
	return rec, nil
}

func (p *implProcessor) Export(ctx context.Context, rec store.Summary) ([]string, error) {
	paths, err := p.exporter.Export(ctx, export.Document{
		ID:         rec.ID,
		Name:       rec.FileName,
		Summary:    rec.Summary,
		Transcript: rec.Transcript,
		CreatedAt:  rec.CreatedAt,
	})
	if err != nil {
		return paths, fmt.Errorf("export summary: %w", err)
	}
	return paths, nil
}
