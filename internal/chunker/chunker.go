package chunker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nguyentantai21042004/recap-flow/internal/media"
)

const outputName = "chunk" + OutputExt

// Initialize loads the runtime once per engine
func (e *implEngine) Initialize(ctx context.Context) error {
	if e.initialized {
		return nil
	}

	loadCtx := ctx
	if e.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, e.opts.LoadTimeout)
		defer cancel()
	}

	if err := e.runtime.Load(loadCtx); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	e.initialized = true
	e.logger.Debug(ctx, "Media runtime loaded")
	return nil
}

// Chunk re-encodes file into audio-only segments of targetSeconds each.
// Either every segment is returned or none is.
func (e *implEngine) Chunk(ctx context.Context, file media.File, targetSeconds float64) ([]Chunk, error) {
	if targetSeconds <= 0 {
		targetSeconds = DefaultTargetDuration
	}
	if len(file.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidInput, file.Name)
	}
	ext := file.Ext()
	if !media.IsSupported(file.Name) {
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidInput, ext)
	}

	if err := e.Initialize(ctx); err != nil {
		return nil, err
	}

	inputName := "input" + ext
	if err := e.runtime.WriteFile(inputName, file.Data); err != nil {
		return nil, fmt.Errorf("%w: ingest %s: %w", ErrInitialization, file.Name, err)
	}
	defer e.removeFile(ctx, inputName)
	defer e.removeFile(ctx, outputName)

	duration, err := e.readDuration(ctx, inputName)
	if err != nil {
		return nil, err
	}

	windows := plan(duration, targetSeconds)
	e.logger.Info(ctx, "Chunking %s: duration %.2fs into %d chunk(s) of %.0fs",
		file.Name, duration, len(windows), targetSeconds)

	chunks := make([]Chunk, 0, len(windows))
	for i, w := range windows {
		payload, err := e.extract(ctx, inputName, w)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d/%d [%s-%s]: %w", ErrSegmentExtraction,
				i+1, len(windows), formatSeconds(w.start), formatSeconds(w.end), err)
		}

		chunks = append(chunks, Chunk{
			Payload:   payload,
			StartTime: w.start,
			EndTime:   w.end,
		})
		e.logger.Debug(ctx, "Extracted chunk %d/%d (%d bytes)", i+1, len(windows), len(payload))
	}

	return chunks, nil
}

// extract encodes one window into the shared output slot and reads it back
// before the next window overwrites it.
func (e *implEngine) extract(ctx context.Context, inputName string, w bounds) ([]byte, error) {
	// -ss before -i: fast input seek
	// -vn: drop video
	// -y: overwrite the output slot
	args := []string{
		"-y",
		"-ss", formatSeconds(w.start),
		"-t", formatSeconds(w.end - w.start),
		"-i", inputName,
		"-vn",
		"-acodec", e.opts.AudioCodec,
		"-b:a", e.opts.AudioBitrate,
		outputName,
	}

	if err := e.runtime.Exec(ctx, args, nil); err != nil {
		return nil, err
	}

	payload, err := e.runtime.ReadFile(outputName)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty output")
	}
	return payload, nil
}

// Close releases the runtime
func (e *implEngine) Close() error {
	e.initialized = false
	return e.runtime.Close()
}

func (e *implEngine) removeFile(ctx context.Context, name string) {
	if err := e.runtime.RemoveFile(name); err != nil {
		e.logger.Warn(ctx, "Failed to remove %s from runtime: %v", name, err)
	}
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
