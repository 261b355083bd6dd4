package transcoder

import (
	"context"

	apperrors "github.com/killallgit/converter-api/pkg/errors"
)

const (
	// MPEG-1 Layer III, 128 kbit/s, 44.1 kHz, stereo, unpadded
	placeholderFrameLength   = 417
	defaultPlaceholderFrames = 38
)

var placeholderFrameHeader = [4]byte{0xFF, 0xFB, 0x90, 0x00}

// Placeholder returns a fixed buffer of silent MP3 frames regardless of input
type Placeholder struct {
	frames int
}

// NewPlaceholder creates a placeholder backend emitting the given number of frames
func NewPlaceholder(frames int) *Placeholder {
	if frames <= 0 {
		frames = defaultPlaceholderFrames
	}
	return &Placeholder{frames: frames}
}

// Name implements Transcoder
func (p *Placeholder) Name() string { return BackendPlaceholder }

// Convert implements Transcoder
func (p *Placeholder) Convert(ctx context.Context, data []byte, mediaType string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.ConversionFailed("Conversion was cancelled", err)
	}
	return placeholderFrames(p.frames), nil
}

func placeholderFrames(n int) []byte {
	out := make([]byte, n*placeholderFrameLength)
	for i := 0; i < n; i++ {
		copy(out[i*placeholderFrameLength:], placeholderFrameHeader[:])
	}
	return out
}
