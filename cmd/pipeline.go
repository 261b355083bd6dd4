package cmd

import (
	"github.com/killallgit/converter-api/internal/services/conversion"
	"github.com/killallgit/converter-api/internal/transcoder"
	"github.com/killallgit/converter-api/pkg/config"
	"go.uber.org/zap"
)

// newConversionService wires the configured transcoder behind the conversion service
func newConversionService(cfg *config.Config, stats *conversion.Stats, log *zap.SugaredLogger) (*conversion.Service, error) {
	tc, err := transcoder.New(cfg.Transcoder, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	return conversion.NewService(tc, stats, conversion.Options{
		Timeout:       cfg.Transcoder.Timeout,
		RetryAttempts: cfg.Transcoder.RetryAttempts,
		RetryDelay:    cfg.Transcoder.RetryDelay,
	}, log), nil
}
