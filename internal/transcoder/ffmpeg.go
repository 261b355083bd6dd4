package transcoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/killallgit/converter-api/internal/upload"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"github.com/killallgit/converter-api/pkg/ffmpeg"
	"go.uber.org/zap"
)

// TempDirPrefix names the per-call scratch directories of the ffmpeg backend
const TempDirPrefix = "convert_"

// FFmpegOptions configures the ffmpeg backend
type FFmpegOptions struct {
	TempDir    string
	ProbeInput bool
	Encode     ffmpeg.EncodeOptions
}

// FFmpeg converts by running the ffmpeg binary on a scratch copy of the upload
type FFmpeg struct {
	ff   *ffmpeg.FFmpeg
	opts FFmpegOptions
	log  *zap.SugaredLogger
}

// NewFFmpeg creates an ffmpeg-backed transcoder
func NewFFmpeg(ff *ffmpeg.FFmpeg, opts FFmpegOptions, log *zap.SugaredLogger) *FFmpeg {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FFmpeg{ff: ff, opts: opts, log: log}
}

// Name implements Transcoder
func (f *FFmpeg) Name() string { return BackendFFmpeg }

// Convert implements Transcoder. All scratch files live in one directory that
// is removed on every return path.
func (f *FFmpeg) Convert(ctx context.Context, data []byte, mediaType string) ([]byte, error) {
	workDir, err := os.MkdirTemp(f.opts.TempDir, TempDirPrefix+"*")
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			f.log.Warnw("Failed to remove conversion directory", "dir", workDir, "error", err)
		}
	}()

	ext := upload.ExtensionForMediaType(mediaType)
	if ext == "" {
		ext = ".video"
	}
	inputPath := filepath.Join(workDir, "input"+ext)
	outputPath := filepath.Join(workDir, "output.mp3")

	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return nil, apperrors.Internal(err)
	}

	if f.opts.ProbeInput {
		metadata, err := f.ff.ValidateInput(ctx, inputPath)
		if err != nil {
			return nil, mapFFmpegError(err)
		}
		f.log.Debugw("Probed upload",
			"format", metadata.Format,
			"video_codec", metadata.VideoCodec,
			"audio_codec", metadata.AudioCodec,
			"duration", metadata.Duration)
	}

	if err := f.ff.ConvertToMP3(ctx, inputPath, outputPath, f.opts.Encode); err != nil {
		return nil, mapFFmpegError(err)
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, apperrors.ConversionFailed("Failed to read converted audio", err)
	}
	return out, nil
}

// mapFFmpegError translates pkg/ffmpeg failures into application errors
func mapFFmpegError(err error) error {
	switch {
	case errors.Is(err, ffmpeg.ErrFFmpegNotFound), errors.Is(err, ffmpeg.ErrFFprobeNotFound):
		return apperrors.TranscoderUnavailable(BackendFFmpeg, err)
	case errors.Is(err, ffmpeg.ErrNoAudioStream):
		return apperrors.UnsupportedMedia("The video has no audio track to convert", err)
	case errors.Is(err, ffmpeg.ErrInvalidMediaFile):
		return apperrors.UnsupportedMedia("The video file could not be read", err)
	case errors.Is(err, ffmpeg.ErrProcessingTimeout):
		return apperrors.ConversionFailed("Conversion was interrupted", err)
	default:
		return apperrors.ConversionFailed("Failed to convert video to MP3", err)
	}
}
