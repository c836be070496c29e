package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/recap-flow/internal/chunker"
	"github.com/nguyentantai21042004/recap-flow/internal/config"
	"github.com/nguyentantai21042004/recap-flow/internal/export"
	"github.com/nguyentantai21042004/recap-flow/internal/httpapi"
	"github.com/nguyentantai21042004/recap-flow/internal/logger"
	"github.com/nguyentantai21042004/recap-flow/internal/media"
	"github.com/nguyentantai21042004/recap-flow/internal/processor"
	"github.com/nguyentantai21042004/recap-flow/internal/store"
	"github.com/nguyentantai21042004/recap-flow/internal/summarizer"
	"github.com/nguyentantai21042004/recap-flow/internal/transcriber"
	"github.com/nguyentantai21042004/recap-flow/internal/watcher"
	"github.com/nguyentantai21042004/recap-flow/pkg/executor"
	"github.com/nguyentantai21042004/recap-flow/pkg/ffmpeg"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	filePath := flag.String("file", "", "transcribe and summarize one media file, then exit")
	textPath := flag.String("text", "", "summarize a transcript text file, then exit")
	style := flag.String("style", "", "summary style: brief, bullet or action")
	userID := flag.String("user", "", "owner of stored summaries in one-shot modes")
	serve := flag.Bool("serve", false, "run the HTTP API instead of the folder watcher")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *style != "" {
		cfg.Summary.Style = *style
	}
	if *userID == "" {
		*userID = cfg.Watch.UserID
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err := run(ctx, cfg, log, *filePath, *textPath, *userID, *serve); err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, filePath, textPath, userID string, serve bool) error {
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Recap Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	// A pasted transcript never reaches a speech backend
	backend, err := transcriber.New(cfg)
	switch {
	case err == nil:
		log.Info(ctx, "Transcription backend: %s", backend.Name())
	case textPath == "":
		return fmt.Errorf("select transcription backend: %w", err)
	}

	st, err := store.Open(cfg.Paths.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	exec := executor.New()
	engines := func() chunker.Engine {
		rt := ffmpeg.New(cfg.FFmpeg.BinaryPath, cfg.Paths.Temp, exec)
		return chunker.New(rt, chunker.Options{
			AudioCodec:   cfg.FFmpeg.AudioCodec,
			AudioBitrate: cfg.FFmpeg.AudioBitrate,
			LoadTimeout:  cfg.FFmpeg.LoadTimeout,
		}, log)
	}

	sum := summarizer.New(cfg, log)
	log.Info(ctx, "Summary provider: %s (style: %s)", sum.Name(), cfg.Summary.Style)

	proc := processor.New(cfg, engines, backend, sum, st, export.New(cfg.Paths.Output, log), log)

	switch {
	case textPath != "":
		return summarizeText(ctx, proc, log, textPath, userID, cfg.Summary.Style)
	case filePath != "":
		return recapFile(ctx, cfg, proc, log, filePath, userID)
	case serve:
		return httpapi.New(cfg, proc, st, log).Run(ctx)
	default:
		return watch(ctx, cfg, proc, log)
	}
}

func summarizeText(ctx context.Context, proc processor.Processor, log logger.Logger, path, userID, style string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	rec, err := proc.Summarize(ctx, userID, processor.TextInputName, string(data), summarizer.Options{Style: summarizer.ParseStyle(style)})
	if err != nil {
		return err
	}
	return printAndExport(ctx, proc, log, rec)
}

func recapFile(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger, path, userID string) error {
	file, err := media.Open(path, cfg.Limits.MaxFileSize)
	if err != nil {
		return fmt.Errorf("open media: %w", err)
	}

	transcript, err := proc.Transcribe(ctx, file, processor.TranscribeOptions{
		Progress: func(percent float64) {
			log.Info(ctx, "Transcription progress: %.0f%%", percent)
		},
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	rec, err := proc.Summarize(ctx, userID, file.Name, transcript, summarizer.Options{})
	if err != nil {
		return err
	}
	return printAndExport(ctx, proc, log, rec)
}

func printAndExport(ctx context.Context, proc processor.Processor, log logger.Logger, rec store.Summary) error {
	paths, err := proc.Export(ctx, rec)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Info(ctx, "Output: %s", p)
	}
	fmt.Println(rec.Summary)
	return nil
}

func watch(ctx context.Context, cfg *config.Config, proc processor.Processor, log logger.Logger) error {
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, watcher.Options{
		MaxConcurrent: cfg.Performance.MaxConcurrent,
		SettleDelay:   cfg.Watch.SettleDelay,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Recap Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Chunks: %.0fs, timeout %s per chunk", cfg.Transcription.ChunkDuration, cfg.Transcription.ChunkTimeout)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	err = w.Start(ctx)
	log.Info(context.Background(), "Recap Pipeline stopped")
	return err
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
