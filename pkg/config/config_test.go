package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetForTesting() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
	configPath = DefaultConfigPath
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings file",
			setup: func(t *testing.T) {
				SetConfigFile(writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
transcoder:
  backend: unimplemented
  unimplemented:
    delay: 250ms
`))
			},
			check: func(t *testing.T) {
				assert.Equal(t, 9000, GetInt("server.port"))
				assert.Equal(t, "unimplemented", GetString("transcoder.backend"))
				assert.Equal(t, 250*time.Millisecond, GetDuration("transcoder.unimplemented.delay"))
			},
		},
		{
			name: "environment variable override",
			setup: func(t *testing.T) {
				SetConfigFile(writeConfig(t, `
server:
  port: 8080
`))
				t.Setenv("CONVERTER_SERVER_PORT", "9090")
			},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
			},
		},
		{
			name: "missing config file with defaults",
			setup: func(t *testing.T) {
				SetConfigFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
			},
			check: func(t *testing.T) {
				cfg, err := GetConfig()
				require.NoError(t, err)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "placeholder", cfg.Transcoder.Backend)
				assert.Equal(t, 60*time.Second, cfg.Transcoder.Timeout)
				assert.Equal(t, 38, cfg.Transcoder.Placeholder.Frames)
				assert.True(t, cfg.Features.EnableSwagger)
			},
		},
		{
			name: "unknown backend is rejected",
			setup: func(t *testing.T) {
				SetConfigFile(writeConfig(t, `
transcoder:
  backend: lame
`))
			},
			wantErr: true,
		},
		{
			name: "remote backend without url is rejected",
			setup: func(t *testing.T) {
				SetConfigFile(writeConfig(t, `
transcoder:
  backend: remote
`))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetForTesting()
			t.Cleanup(resetForTesting)
			tt.setup(t)

			err := Init()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080},
		Upload: UploadConfig{MaxMemory: 32 << 20},
		Transcoder: TranscoderConfig{
			Backend:     "placeholder",
			Timeout:     time.Minute,
			Placeholder: PlaceholderConfig{Frames: 1},
		},
		Storage: StorageConfig{MaxTempAge: time.Hour, CleanupInterval: 15 * time.Minute},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "zero transcoder timeout",
			mutate:  func(c *Config) { c.Transcoder.Timeout = 0 },
			wantErr: true,
		},
		{
			name: "remote backend with url",
			mutate: func(c *Config) {
				c.Transcoder.Backend = "remote"
				c.Transcoder.Remote.URL = "http://transcoder.internal/convert"
			},
			wantErr: false,
		},
		{
			name: "remote url must be a url",
			mutate: func(c *Config) {
				c.Transcoder.Backend = "remote"
				c.Transcoder.Remote.URL = "not a url"
			},
			wantErr: true,
		},
		{
			name: "ffmpeg backend without binary path",
			mutate: func(c *Config) {
				c.Transcoder.Backend = "ffmpeg"
			},
			wantErr: true,
		},
		{
			name:    "zero cleanup interval",
			mutate:  func(c *Config) { c.Storage.CleanupInterval = 0 },
			wantErr: true,
		},
		{
			name:    "negative cleanup interval",
			mutate:  func(c *Config) { c.Storage.CleanupInterval = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero temp age",
			mutate:  func(c *Config) { c.Storage.MaxTempAge = 0 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
