package config

import (
	"fmt"
	"time"
)

const (
	DefaultChunkDuration = 300.0
	DefaultChunkTimeout  = 5 * time.Minute
	DefaultMaxFileSize   = 50 << 20
)

type Config struct {
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summary       SummaryConfig       `yaml:"summary"`
	Paths         PathsConfig         `yaml:"paths"`
	Limits        LimitsConfig        `yaml:"limits"`
	Server        ServerConfig        `yaml:"server"`
	Watch         WatchConfig         `yaml:"watch"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`

	// Credentials never come from the YAML file.
	Credentials CredentialsConfig `yaml:"-"`
}

type FFmpegConfig struct {
	BinaryPath   string        `yaml:"binary_path"`
	AudioCodec   string        `yaml:"audio_codec"`
	AudioBitrate string        `yaml:"audio_bitrate"`
	LoadTimeout  time.Duration `yaml:"load_timeout"`
}

type TranscriptionConfig struct {
	Provider      string        `yaml:"provider"`
	BaseURL       string        `yaml:"base_url"`
	Model         string        `yaml:"model"`
	Language      string        `yaml:"language"`
	SmartFormat   bool          `yaml:"smart_format"`
	Punctuate     bool          `yaml:"punctuate"`
	ChunkDuration float64       `yaml:"chunk_duration"`
	ChunkTimeout  time.Duration `yaml:"chunk_timeout"`
}

type SummaryConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	Style       string   `yaml:"style"`
	MaxTokens   int      `yaml:"max_tokens"`
	MaxLength   int      `yaml:"max_length"`
	Temperature *float32 `yaml:"temperature"`
}

// DefaultTemperature applies when summary.temperature is absent
const DefaultTemperature float32 = 0.3

// TemperatureValue returns the configured temperature. An explicit 0 is
// kept.
func (s SummaryConfig) TemperatureValue() float32 {
	if s.Temperature == nil {
		return DefaultTemperature
	}
	return *s.Temperature
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
	Database string `yaml:"database"`
}

type LimitsConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type WatchConfig struct {
	UserID      string        `yaml:"user_id"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type CredentialsConfig struct {
	DeepgramAPIKey   string   `env:"DEEPGRAM_API_KEY"`
	OpenAIAPIKey     string   `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string   `env:"OPENROUTER_API_KEY"`
	ClaudeAPIKey     string   `env:"CLAUDE_API_KEY"`
	GeminiAPIKeys    []string `env:"GEMINI_API_KEYS" env-separator:","`
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Transcription.ChunkDuration < 0 {
		return fmt.Errorf("transcription.chunk_duration must be positive")
	}
	if c.Summary.MaxLength < 0 {
		return fmt.Errorf("summary.max_length must be positive")
	}
	if c.Limits.MaxFileSize < 0 {
		return fmt.Errorf("limits.max_file_size must be positive")
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Database == "" {
		c.Paths.Database = "data/recap.sqlite"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "128k"
	}
	if c.FFmpeg.LoadTimeout == 0 {
		c.FFmpeg.LoadTimeout = 30 * time.Second
	}
	if c.Transcription.ChunkDuration == 0 {
		c.Transcription.ChunkDuration = DefaultChunkDuration
	}
	if c.Transcription.ChunkTimeout == 0 {
		c.Transcription.ChunkTimeout = DefaultChunkTimeout
	}
	if c.Summary.Style == "" {
		c.Summary.Style = "brief"
	}
	if c.Summary.MaxTokens == 0 {
		c.Summary.MaxTokens = 1000
	}
	if c.Summary.Temperature == nil {
		t := DefaultTemperature
		c.Summary.Temperature = &t
	}
	if c.Limits.MaxFileSize == 0 {
		c.Limits.MaxFileSize = DefaultMaxFileSize
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Watch.UserID == "" {
		c.Watch.UserID = "local"
	}
	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
