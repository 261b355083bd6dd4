package transcoder

import (
	"context"
	"fmt"

	"github.com/killallgit/converter-api/pkg/config"
	"github.com/killallgit/converter-api/pkg/ffmpeg"
	"go.uber.org/zap"
)

// Backend names accepted by transcoder.backend
const (
	BackendPlaceholder   = "placeholder"
	BackendUnimplemented = "unimplemented"
	BackendFFmpeg        = "ffmpeg"
	BackendRemote        = "remote"
)

// Backends lists every backend name New accepts
func Backends() []string {
	return []string{BackendPlaceholder, BackendUnimplemented, BackendFFmpeg, BackendRemote}
}

// Transcoder turns raw video bytes into MP3 bytes
type Transcoder interface {
	// Name identifies the backend in logs and status payloads
	Name() string

	// Convert returns MP3 data for the given input. Failures are *errors.AppError values.
	Convert(ctx context.Context, data []byte, mediaType string) ([]byte, error)
}

// New builds the backend selected by cfg.Backend
func New(cfg config.TranscoderConfig, storage config.StorageConfig, log *zap.SugaredLogger) (Transcoder, error) {
	switch cfg.Backend {
	case BackendPlaceholder, "":
		return NewPlaceholder(cfg.Placeholder.Frames), nil

	case BackendUnimplemented:
		return NewUnimplemented(cfg.Unimplemented.Delay), nil

	case BackendFFmpeg:
		ff := ffmpeg.New(cfg.FFmpeg.FFmpegPath, cfg.FFmpeg.FFprobePath, 0)
		if err := ff.ValidateBinaries(); err != nil {
			return nil, fmt.Errorf("ffmpeg backend: %w", err)
		}
		return NewFFmpeg(ff, FFmpegOptions{
			TempDir:    storage.TempDir,
			ProbeInput: cfg.FFmpeg.ProbeInput,
			Encode: ffmpeg.EncodeOptions{
				Bitrate:    cfg.FFmpeg.Bitrate,
				SampleRate: cfg.FFmpeg.SampleRate,
				Channels:   cfg.FFmpeg.Channels,
			},
		}, log), nil

	case BackendRemote:
		remote, err := NewRemote(RemoteOptions{
			URL:          cfg.Remote.URL,
			Timeout:      cfg.Remote.Timeout,
			Retries:      cfg.Remote.Retries,
			RetryBackoff: cfg.Remote.RetryBackoff,
		}, log)
		if err != nil {
			return nil, err
		}
		return remote, nil

	default:
		return nil, fmt.Errorf("unknown transcoder backend %q", cfg.Backend)
	}
}
