package conversion

import (
	"context"
	"errors"
	"time"

	"github.com/killallgit/converter-api/internal/transcoder"
	"github.com/killallgit/converter-api/internal/upload"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"go.uber.org/zap"
)

// Options tunes the conversion service
type Options struct {
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// Outcome is a successful conversion
type Outcome struct {
	Data     []byte
	Filename string
}

// Service runs validated uploads through a transcoder with a deadline and
// bounded retries
type Service struct {
	transcoder transcoder.Transcoder
	stats      *Stats
	opts       Options
	log        *zap.SugaredLogger
}

// NewService creates a conversion service
func NewService(tc transcoder.Transcoder, stats *Stats, opts Options, log *zap.SugaredLogger) *Service {
	if stats == nil {
		stats = NewStats()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		transcoder: tc,
		stats:      stats,
		opts:       opts,
		log:        log,
	}
}

// Backend returns the name of the underlying transcoder
func (s *Service) Backend() string {
	return s.transcoder.Name()
}

// Stats returns the shared counters
func (s *Service) Stats() *Stats {
	return s.stats
}

type result struct {
	data []byte
	err  error
}

// Convert transcodes an accepted upload. The returned error is always an
// *errors.AppError.
func (s *Service) Convert(ctx context.Context, req upload.Request) (*Outcome, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	for attempt := 0; attempt <= s.opts.RetryAttempts; attempt++ {
		if attempt > 0 {
			s.log.Infow("Retrying conversion",
				"backend", s.transcoder.Name(),
				"attempt", attempt+1,
				"error", err)
			if werr := s.wait(ctx); werr != nil {
				break
			}
		}

		var data []byte
		data, err = s.call(ctx, req)
		if err == nil {
			s.stats.recordConverted()
			s.log.Infow("Conversion completed",
				"backend", s.transcoder.Name(),
				"filename", req.Filename(),
				"input_bytes", req.Size(),
				"output_bytes", len(data),
				"duration", time.Since(start))
			return &Outcome{Data: data, Filename: upload.SuggestedFilename(req.Filename())}, nil
		}

		if ctx.Err() != nil || !apperrors.IsRetryable(err) {
			break
		}
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.stats.recordTimeout()
		return nil, apperrors.TimeoutError("MP3 conversion", s.opts.Timeout.String()).WithCause(err)
	}

	s.stats.recordFailed()
	if _, ok := apperrors.As(err); !ok {
		err = apperrors.ConversionFailed("Failed to convert video to MP3", err)
	}
	return nil, err
}

// call runs one transcoder attempt, returning as soon as ctx is done even if
// the backend does not observe it
func (s *Service) call(ctx context.Context, req upload.Request) ([]byte, error) {
	done := make(chan result, 1)
	go func() {
		data, err := s.transcoder.Convert(ctx, req.Data(), req.MediaType())
		done <- result{data: data, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && len(r.data) == 0 {
			return nil, apperrors.ConversionFailed("Transcoder returned no audio", nil)
		}
		return r.data, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.opts.RetryDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.opts.RetryDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
