package types

import (
	"context"

	"github.com/killallgit/converter-api/internal/services/conversion"
	"github.com/killallgit/converter-api/internal/upload"
	"go.uber.org/zap"
)

// Converter runs an accepted upload through the configured transcoder
type Converter interface {
	Convert(ctx context.Context, req upload.Request) (*conversion.Outcome, error)
	Backend() string
}

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	Converter Converter
	Stats     *conversion.Stats
	Logger    *zap.SugaredLogger
	Build     BuildInfo
}

// Log returns the configured logger or a no-op logger
func (d *Dependencies) Log() *zap.SugaredLogger {
	if d == nil || d.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return d.Logger
}

// Backend returns the transcoder name or "none"
func (d *Dependencies) Backend() string {
	if d == nil || d.Converter == nil {
		return "none"
	}
	return d.Converter.Backend()
}
