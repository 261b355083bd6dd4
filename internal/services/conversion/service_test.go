package conversion

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/killallgit/converter-api/internal/upload"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTranscoder returns scripted results in order, repeating the last one
type mockTranscoder struct {
	results []mockResult
	block   bool
	calls   int32
}

type mockResult struct {
	data []byte
	err  error
}

func (m *mockTranscoder) Name() string { return "mock" }

func (m *mockTranscoder) Convert(ctx context.Context, data []byte, mediaType string) ([]byte, error) {
	n := int(atomic.AddInt32(&m.calls, 1)) - 1
	if m.block {
		// ignores ctx on purpose
		time.Sleep(time.Second)
	}
	if n >= len(m.results) {
		n = len(m.results) - 1
	}
	return m.results[n].data, m.results[n].err
}

func newRequest() upload.Request {
	return upload.NewRequest("holiday.mov", "video/mov", []byte("video"))
}

func TestService_Convert_Success(t *testing.T) {
	stats := NewStats()
	tc := &mockTranscoder{results: []mockResult{{data: []byte("mp3")}}}
	svc := NewService(tc, stats, Options{Timeout: time.Second}, nil)

	outcome, err := svc.Convert(context.Background(), newRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), outcome.Data)
	assert.Equal(t, "holiday.mp3", outcome.Filename)
	assert.Equal(t, int64(1), stats.Snapshot().Converted)
	assert.Equal(t, "mock", svc.Backend())
}

func TestService_Convert_Failure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode apperrors.ErrorCode
		wantHTTP int
	}{
		{
			name:     "app error passes through",
			err:      apperrors.ConversionFailed("MP3 conversion is not implemented", nil),
			wantCode: apperrors.ErrCodeConversionFailed,
			wantHTTP: http.StatusInternalServerError,
		},
		{
			name:     "upstream failure",
			err:      apperrors.ExternalServiceError("remote-transcoder", errors.New("502")),
			wantCode: apperrors.ErrCodeExternalService,
			wantHTTP: http.StatusBadGateway,
		},
		{
			name:     "plain error is wrapped",
			err:      errors.New("codec exploded"),
			wantCode: apperrors.ErrCodeConversionFailed,
			wantHTTP: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewStats()
			tc := &mockTranscoder{results: []mockResult{{err: tt.err}}}
			svc := NewService(tc, stats, Options{Timeout: time.Second, RetryAttempts: 2}, nil)

			outcome, err := svc.Convert(context.Background(), newRequest())
			assert.Nil(t, outcome)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			assert.Equal(t, tt.wantHTTP, apperrors.GetHTTPCode(err))
			assert.Equal(t, int32(1), atomic.LoadInt32(&tc.calls), "non-retryable errors are not retried")
			assert.Equal(t, int64(1), stats.Snapshot().Failed)
		})
	}
}

func TestService_Convert_EmptyOutput(t *testing.T) {
	tc := &mockTranscoder{results: []mockResult{{data: nil}}}
	svc := NewService(tc, nil, Options{Timeout: time.Second}, nil)

	_, err := svc.Convert(context.Background(), newRequest())
	assert.Equal(t, apperrors.ErrCodeConversionFailed, apperrors.GetCode(err))
}

func TestService_Convert_RetriesRetryable(t *testing.T) {
	busy := apperrors.ExternalServiceError("remote-transcoder", errors.New("503")).AsRetryable()
	tc := &mockTranscoder{results: []mockResult{{err: busy}, {err: busy}, {data: []byte("mp3")}}}
	svc := NewService(tc, nil, Options{Timeout: time.Second, RetryAttempts: 2, RetryDelay: time.Millisecond}, nil)

	outcome, err := svc.Convert(context.Background(), newRequest())
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), outcome.Data)
	assert.Equal(t, int32(3), atomic.LoadInt32(&tc.calls))
}

func TestService_Convert_RetriesExhausted(t *testing.T) {
	busy := apperrors.ExternalServiceError("remote-transcoder", errors.New("503")).AsRetryable()
	tc := &mockTranscoder{results: []mockResult{{err: busy}}}
	svc := NewService(tc, nil, Options{Timeout: time.Second, RetryAttempts: 1}, nil)

	_, err := svc.Convert(context.Background(), newRequest())
	assert.Equal(t, apperrors.ErrCodeExternalService, apperrors.GetCode(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&tc.calls))
}

func TestService_Convert_Timeout(t *testing.T) {
	stats := NewStats()
	tc := &mockTranscoder{block: true, results: []mockResult{{data: []byte("late")}}}
	svc := NewService(tc, stats, Options{Timeout: 20 * time.Millisecond, RetryAttempts: 3}, nil)

	start := time.Now()
	_, err := svc.Convert(context.Background(), newRequest())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, 500*time.Millisecond, "a blocking backend must not hold the caller past the deadline")
	assert.Equal(t, apperrors.ErrCodeConversionTimeout, apperrors.GetCode(err))
	assert.Equal(t, http.StatusGatewayTimeout, apperrors.GetHTTPCode(err))
	assert.Equal(t, int64(1), stats.Snapshot().Timeouts)
	assert.Equal(t, int64(0), stats.Snapshot().Failed)
}

func TestStats_Concurrent(t *testing.T) {
	stats := NewStats()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats.RecordRequest()
			stats.RecordAccepted()
			stats.recordConverted()
		}()
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(50), snap.Requests)
	assert.Equal(t, int64(50), snap.Accepted)
	assert.Equal(t, int64(50), snap.Converted)
	assert.Zero(t, snap.Rejected)
	assert.False(t, stats.StartedAt().IsZero())
	assert.GreaterOrEqual(t, stats.Uptime(), time.Duration(0))
}
