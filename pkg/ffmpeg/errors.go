package ffmpeg

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrFFmpegNotFound    = errors.New("ffmpeg binary not found")
	ErrFFprobeNotFound   = errors.New("ffprobe binary not found")
	ErrNoAudioStream     = errors.New("input has no audio stream")
	ErrInvalidMediaFile  = errors.New("invalid or unsupported media file")
	ErrProcessingTimeout = errors.New("media processing timeout")
	ErrEmptyOutput       = errors.New("ffmpeg produced no output")
)

// ProcessingError represents an error during media processing
type ProcessingError struct {
	Operation string // The operation that failed (e.g., "metadata_extraction", "mp3_encoding")
	File      string // The file being processed
	Err       error  // The underlying error
	Stderr    string // stderr output from ffmpeg/ffprobe
}

func (e *ProcessingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffmpeg %s failed for %s: %v (stderr: %s)", e.Operation, e.File, e.Err, e.Stderr)
	}
	return fmt.Sprintf("ffmpeg %s failed for %s: %v", e.Operation, e.File, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(operation, file string, err error, stderr string) *ProcessingError {
	return &ProcessingError{
		Operation: operation,
		File:      file,
		Err:       err,
		Stderr:    tailStderr(stderr),
	}
}

// tailStderr keeps the last part of ffmpeg's output, where the actual error is
func tailStderr(stderr string) string {
	const limit = 2048
	if len(stderr) <= limit {
		return stderr
	}
	return "..." + stderr[len(stderr)-limit:]
}
