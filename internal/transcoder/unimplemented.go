package transcoder

import (
	"context"
	"time"

	apperrors "github.com/killallgit/converter-api/pkg/errors"
)

// MsgNotImplemented is the failure reported by the unimplemented backend
const MsgNotImplemented = "MP3 conversion is not implemented"

// Unimplemented simulates a slow transcoder that always fails
type Unimplemented struct {
	delay time.Duration
}

// NewUnimplemented creates a backend that fails after delay
func NewUnimplemented(delay time.Duration) *Unimplemented {
	return &Unimplemented{delay: delay}
}

// Name implements Transcoder
func (u *Unimplemented) Name() string { return BackendUnimplemented }

// Convert implements Transcoder
func (u *Unimplemented) Convert(ctx context.Context, data []byte, mediaType string) ([]byte, error) {
	timer := time.NewTimer(u.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil, apperrors.ConversionFailed(MsgNotImplemented, nil)
	case <-ctx.Done():
		return nil, apperrors.ConversionFailed(MsgNotImplemented, ctx.Err())
	}
}
