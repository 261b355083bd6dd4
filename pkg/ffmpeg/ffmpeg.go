package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance. A zero timeout leaves deadlines to the caller's context.
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	// Check ffmpeg
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	// Check ffprobe
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ConvertToMP3 extracts the audio of inputPath and encodes it as MP3 into outputPath
func (f *FFmpeg) ConvertToMP3(ctx context.Context, inputPath, outputPath string, opts EncodeOptions) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, buildMP3Args(inputPath, outputPath, opts)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return NewProcessingError("mp3_encoding", inputPath, ErrProcessingTimeout, stderr.String())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
		}
		return NewProcessingError("mp3_encoding", inputPath, err, stderr.String())
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return NewProcessingError("mp3_encoding", inputPath, err, "")
	}
	if info.Size() == 0 {
		return NewProcessingError("mp3_encoding", inputPath, ErrEmptyOutput, stderr.String())
	}

	return nil
}

// buildMP3Args builds the ffmpeg argument list for audio extraction to MP3
func buildMP3Args(inputPath, outputPath string, opts EncodeOptions) []string {
	// -nostdin: never wait on the terminal
	// -vn: drop video streams
	// -c:a libmp3lame: MP3 encoder
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-map", "0:a:0",
		"-c:a", "libmp3lame",
	}

	if opts.Bitrate != "" {
		args = append(args, "-b:a", opts.Bitrate)
	}
	if opts.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(opts.SampleRate))
	}
	if opts.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(opts.Channels))
	}

	return append(args,
		"-f", "mp3",
		"-y", // Overwrite output
		outputPath,
	)
}
