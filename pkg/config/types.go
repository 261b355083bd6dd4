package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Upload       UploadConfig     `mapstructure:"upload"`
	Transcoder   TranscoderConfig `mapstructure:"transcoder"`
	Storage      StorageConfig    `mapstructure:"storage"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	Features     FeaturesConfig   `mapstructure:"features"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes" validate:"gte=0"`
}

// UploadConfig contains multipart parsing settings
type UploadConfig struct {
	MaxMemory int64 `mapstructure:"max_memory" validate:"gt=0"`
}

// TranscoderConfig selects and tunes the transcoding backend
type TranscoderConfig struct {
	Backend       string                 `mapstructure:"backend" validate:"oneof=placeholder unimplemented ffmpeg remote"`
	Timeout       time.Duration          `mapstructure:"timeout" validate:"gt=0"`
	RetryAttempts int                    `mapstructure:"retry_attempts" validate:"gte=0,lte=10"`
	RetryDelay    time.Duration          `mapstructure:"retry_delay" validate:"gte=0"`
	Placeholder   PlaceholderConfig      `mapstructure:"placeholder"`
	Unimplemented UnimplementedConfig    `mapstructure:"unimplemented"`
	FFmpeg        FFmpegConfig           `mapstructure:"ffmpeg"`
	Remote        RemoteTranscoderConfig `mapstructure:"remote"`
}

// PlaceholderConfig tunes the placeholder backend
type PlaceholderConfig struct {
	Frames int `mapstructure:"frames" validate:"gte=1"`
}

// UnimplementedConfig tunes the unimplemented backend
type UnimplementedConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"gte=0"`
}

// FFmpegConfig contains ffmpeg subprocess settings
type FFmpegConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	Bitrate     string `mapstructure:"bitrate"`
	SampleRate  int    `mapstructure:"sample_rate" validate:"gte=0"`
	Channels    int    `mapstructure:"channels" validate:"gte=0,lte=2"`
	ProbeInput  bool   `mapstructure:"probe_input"`
}

// RemoteTranscoderConfig contains settings for an HTTP transcoding service
type RemoteTranscoderConfig struct {
	URL          string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Retries      int           `mapstructure:"retries" validate:"gte=0,lte=10"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff" validate:"gte=0"`
}

// StorageConfig contains temp storage settings
type StorageConfig struct {
	TempDir         string        `mapstructure:"temp_dir"`
	MaxTempAge      time.Duration `mapstructure:"max_temp_age" validate:"gt=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
}

// RateLimitConfig contains the convert admission limit
type RateLimitConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ConvertRPS   float64 `mapstructure:"convert_rps" validate:"gte=0"`
	ConvertBurst int     `mapstructure:"convert_burst" validate:"gte=0"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableRequestID bool `mapstructure:"enable_request_id"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

// FeaturesConfig contains feature flags
type FeaturesConfig struct {
	EnableSwagger  bool `mapstructure:"enable_swagger"`
	EnableDocsPage bool `mapstructure:"enable_docs_page"`
}
