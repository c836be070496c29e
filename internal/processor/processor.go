package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
)

// Process orchestrates the drop-folder pipeline for one media file
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting recap: %s", path)
	p.logger.Info(ctx, "========================================")

	// Step 1: Read the media file within the size limit
	file, err := media.Open(path, p.cfg.Limits.MaxFileSize)
	if err != nil {
		return fmt.Errorf("open media: %w", err)
	}

	// Step 2: Chunk and transcribe
	transcript, err := p.Transcribe(ctx, file, TranscribeOptions{
		Progress: func(percent float64) {
			p.logger.Info(ctx, "Transcription progress %s: %.0f%%", file.Name, percent)
		},
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	// Step 3: Summarize and store
	rec, err := p.Summarize(ctx, p.cfg.Watch.UserID, file.Name, transcript, summarizer.Options{})
	if err != nil {
		return err
	}

	// Step 4: Write txt, md and docx to the output folder
	paths, err := p.Export(ctx, rec)
	if err != nil {
		p.logger.Warn(ctx, "Failed to export summary: %v", err)
	}

	// Step 5: Move original to archived folder
	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Recap completed successfully!")
	p.logger.Info(ctx, "Summary ID: %s", rec.ID)
	for _, out := range paths {
		p.logger.Info(ctx, "Output: %s", out)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}
