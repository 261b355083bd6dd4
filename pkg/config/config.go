package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultConfigPath is read when no --config flag is given
const DefaultConfigPath = "./config/settings.yaml"

var (
	once       sync.Once
	initErr    error
	configPath = DefaultConfigPath
	validate   = validator.New()
)

// SetConfigFile overrides the settings file read by Init
func SetConfigFile(path string) {
	if path != "" {
		configPath = path
	}
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// A missing .env is normal outside local development
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			initErr = fmt.Errorf("error loading .env file: %w", err)
			return
		}

		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("CONVERTER")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		path := filepath.Clean(configPath)
		viper.SetConfigFile(path)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) && !errors.Is(err, fs.ErrNotExist) {
				initErr = fmt.Errorf("error reading config file %s: %w", path, err)
				return
			}
		}

		cfg, err := GetConfig()
		if err != nil {
			initErr = err
			return
		}
		if err := cfg.Validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Validate validates a Config struct
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Transcoder.Backend {
	case "remote":
		if c.Transcoder.Remote.URL == "" {
			return fmt.Errorf("transcoder.remote.url is required when transcoder.backend is remote")
		}
	case "ffmpeg":
		if c.Transcoder.FFmpeg.FFmpegPath == "" {
			return fmt.Errorf("transcoder.ffmpeg.ffmpeg_path is required when transcoder.backend is ffmpeg")
		}
	}

	return nil
}

// IsProduction reports whether the configured environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 2*time.Minute)
	viper.SetDefault("server.write_timeout", 3*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Upload defaults
	viper.SetDefault("upload.max_memory", 32<<20)

	// Transcoder defaults
	viper.SetDefault("transcoder.backend", "placeholder")
	viper.SetDefault("transcoder.timeout", 60*time.Second)
	viper.SetDefault("transcoder.retry_attempts", 1)
	viper.SetDefault("transcoder.retry_delay", 500*time.Millisecond)
	viper.SetDefault("transcoder.placeholder.frames", 38)
	viper.SetDefault("transcoder.unimplemented.delay", 1*time.Second)
	viper.SetDefault("transcoder.ffmpeg.ffmpeg_path", "ffmpeg")
	viper.SetDefault("transcoder.ffmpeg.ffprobe_path", "ffprobe")
	viper.SetDefault("transcoder.ffmpeg.bitrate", "192k")
	viper.SetDefault("transcoder.ffmpeg.sample_rate", 44100)
	viper.SetDefault("transcoder.ffmpeg.channels", 2)
	viper.SetDefault("transcoder.ffmpeg.probe_input", true)
	viper.SetDefault("transcoder.remote.url", "")
	viper.SetDefault("transcoder.remote.timeout", 45*time.Second)
	viper.SetDefault("transcoder.remote.retries", 2)
	viper.SetDefault("transcoder.remote.retry_backoff", 250*time.Millisecond)

	// Storage defaults
	viper.SetDefault("storage.temp_dir", os.TempDir())
	viper.SetDefault("storage.max_temp_age", 1*time.Hour)
	viper.SetDefault("storage.cleanup_interval", 15*time.Minute)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.convert_rps", 5)
	viper.SetDefault("rate_limiting.convert_burst", 10)

	// Security defaults
	viper.SetDefault("security.enable_request_id", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	// Features defaults
	viper.SetDefault("features.enable_swagger", true)
	viper.SetDefault("features.enable_docs_page", true)
}
