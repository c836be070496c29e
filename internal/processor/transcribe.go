package processor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-flow/internal/chunker"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
)

// Transcribe chunks file and sends the chunks to the backend strictly in
// order. The first failing chunk aborts the run and no partial text is
// returned.
func (p *implProcessor) Transcribe(ctx context.Context, file media.File, opts TranscribeOptions) (string, error) {
	if p.backend == nil {
		return "", transcriber.ErrNoBackend
	}
	if err := media.CheckSize(file.Size, p.cfg.Limits.MaxFileSize); err != nil {
		return "", err
	}

	target := opts.ChunkDuration
	if target <= 0 {
		target = p.cfg.Transcription.ChunkDuration
	}
	recognition := p.recognitionOptions(opts.Recognition)

	engine := p.engines()
	defer func() {
		if err := engine.Close(); err != nil {
			p.logger.Warn(ctx, "Failed to close media engine: %v", err)
		}
	}()

	p.logger.Info(ctx, "Chunking %s (%d bytes) into %.0fs segments", file.Name, file.Size, target)
	chunks, err := engine.Chunk(ctx, file, target)
	if err != nil {
		return "", fmt.Errorf("chunk audio: %w", err)
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("chunk audio: %w: no segments", chunker.ErrSegmentExtraction)
	}

	lastEnd := chunks[len(chunks)-1].EndTime
	parts := make([]string, 0, len(chunks))

	for i, c := range chunks {
		unit := transcriber.Unit{
			Name:     unitName(c),
			MIMEType: chunker.OutputMIME,
			Data:     c.Payload,
		}

		p.logger.Debug(ctx, "Transcribing chunk %d/%d with %s: %s", i+1, len(chunks), p.backend.Name(), unit.Name)
		text, err := p.transcribeUnit(ctx, unit, recognition)
		if err != nil {
			return "", fmt.Errorf("transcribe chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, text)

		if opts.Progress != nil {
			opts.Progress(c.EndTime / lastEnd * 100)
		}
	}

	transcript := strings.Join(parts, " ")
	p.logger.Info(ctx, "Transcribed %s: %d chunks, %d characters", file.Name, len(chunks), len(transcript))
	return transcript, nil
}

func (p *implProcessor) transcribeUnit(ctx context.Context, unit transcriber.Unit, opts transcriber.Options) (string, error) {
	timeout := p.cfg.Transcription.ChunkTimeout
	if timeout <= 0 {
		return p.backend.Transcribe(ctx, unit, opts)
	}

	chunkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := p.backend.Transcribe(chunkCtx, unit, opts)
	if err != nil && chunkCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return "", fmt.Errorf("%s timed out after %s: %w", unit.Name, time.Since(start).Round(time.Second), err)
	}
	return text, err
}

// recognitionOptions fills empty fields from the transcription config
func (p *implProcessor) recognitionOptions(opts transcriber.Options) transcriber.Options {
	tc := p.cfg.Transcription
	if opts.Language == "" {
		opts.Language = tc.Language
	}
	if opts.Model == "" {
		opts.Model = tc.Model
	}
	opts.SmartFormat = opts.SmartFormat || tc.SmartFormat
	opts.Punctuate = opts.Punctuate || tc.Punctuate
	return opts
}

// Chunks are re-encoded to AAC, so the unit name and MIME follow the chunk
// container rather than the source file.
func unitName(c chunker.Chunk) string {
	return "chunk_" + strconv.FormatFloat(c.StartTime, 'f', -1, 64) + "s" + chunker.OutputExt
}
