package transcoder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/killallgit/converter-api/pkg/config"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"github.com/killallgit/converter-api/pkg/ffmpeg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.TranscoderConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "default is placeholder",
			cfg:      config.TranscoderConfig{},
			wantName: BackendPlaceholder,
		},
		{
			name:     "placeholder",
			cfg:      config.TranscoderConfig{Backend: BackendPlaceholder, Placeholder: config.PlaceholderConfig{Frames: 2}},
			wantName: BackendPlaceholder,
		},
		{
			name:     "unimplemented",
			cfg:      config.TranscoderConfig{Backend: BackendUnimplemented},
			wantName: BackendUnimplemented,
		},
		{
			name:     "remote",
			cfg:      config.TranscoderConfig{Backend: BackendRemote, Remote: config.RemoteTranscoderConfig{URL: "http://localhost:9000/convert", Timeout: time.Second}},
			wantName: BackendRemote,
		},
		{
			name:    "remote without url",
			cfg:     config.TranscoderConfig{Backend: BackendRemote},
			wantErr: true,
		},
		{
			name:    "ffmpeg with missing binary",
			cfg:     config.TranscoderConfig{Backend: BackendFFmpeg, FFmpeg: config.FFmpegConfig{FFmpegPath: "/nonexistent/ffmpeg", FFprobePath: "/nonexistent/ffprobe"}},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     config.TranscoderConfig{Backend: "lame"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := New(tt.cfg, config.StorageConfig{TempDir: t.TempDir()}, nil)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, tc == nil, "expected a nil interface, got %T", tc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tc.Name())
		})
	}
}

func TestBackends(t *testing.T) {
	backends := Backends()
	assert.Equal(t, []string{BackendPlaceholder, BackendUnimplemented, BackendFFmpeg, BackendRemote}, backends)

	// Every listed name is accepted by New (ffmpeg and remote fail on settings, not on the name)
	for _, name := range backends {
		_, err := New(config.TranscoderConfig{Backend: name}, config.StorageConfig{}, nil)
		if err != nil {
			assert.NotContains(t, err.Error(), "unknown transcoder backend", name)
		}
	}
}

func TestPlaceholder_Convert(t *testing.T) {
	p := NewPlaceholder(3)

	out, err := p.Convert(context.Background(), []byte("not really a video"), "video/mp4")
	require.NoError(t, err)
	require.Len(t, out, 3*placeholderFrameLength)

	for i := 0; i < 3; i++ {
		frame := out[i*placeholderFrameLength : (i+1)*placeholderFrameLength]
		assert.Equal(t, placeholderFrameHeader[:], frame[:4], "frame %d header", i)
		assert.Equal(t, make([]byte, placeholderFrameLength-4), frame[4:], "frame %d body", i)
	}
}

func TestPlaceholder_DefaultFrames(t *testing.T) {
	out, err := NewPlaceholder(0).Convert(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Len(t, out, defaultPlaceholderFrames*placeholderFrameLength)
}

func TestPlaceholder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlaceholder(1).Convert(ctx, nil, "video/mp4")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConversionFailed))
}

func TestUnimplemented_Convert(t *testing.T) {
	u := NewUnimplemented(10 * time.Millisecond)

	start := time.Now()
	out, err := u.Convert(context.Background(), []byte("x"), "video/mp4")
	assert.Nil(t, out)
	require.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConversionFailed, appErr.Code)
	assert.Equal(t, MsgNotImplemented, appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.GetHTTPCode())
}

func TestUnimplemented_HonorsContext(t *testing.T) {
	u := NewUnimplemented(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := u.Convert(ctx, nil, "video/mp4")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRemote_Convert(t *testing.T) {
	mp3 := placeholderFrames(2)

	var gotType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(mp3)
	}))
	defer server.Close()

	remote, err := NewRemote(RemoteOptions{URL: server.URL, Timeout: time.Second}, nil)
	require.NoError(t, err)

	out, err := remote.Convert(context.Background(), []byte("video-bytes"), "video/webm")
	require.NoError(t, err)
	assert.Equal(t, mp3, out)
	assert.Equal(t, "video/webm", gotType)
	assert.Equal(t, "video-bytes", gotBody)
}

func TestRemote_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// the body is replayed on every attempt
		_, _ = w.Write(append([]byte("mp3:"), body...))
	}))
	defer server.Close()

	remote, err := NewRemote(RemoteOptions{URL: server.URL, Timeout: time.Second, Retries: 2, RetryBackoff: time.Millisecond}, nil)
	require.NoError(t, err)

	out, err := remote.Convert(context.Background(), []byte("abc"), "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "mp3:abc", string(out))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRemote_ErrorMapping(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantCode      apperrors.ErrorCode
		wantHTTP      int
		wantRetryable bool
	}{
		{"client error", http.StatusUnprocessableEntity, apperrors.ErrCodeUnsupportedMedia, http.StatusInternalServerError, false},
		{"server error", http.StatusBadGateway, apperrors.ErrCodeExternalService, http.StatusBadGateway, false},
		{"busy", http.StatusServiceUnavailable, apperrors.ErrCodeExternalService, http.StatusBadGateway, true},
		{"throttled", http.StatusTooManyRequests, apperrors.ErrCodeExternalService, http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			remote, err := NewRemote(RemoteOptions{URL: server.URL, Timeout: time.Second}, nil)
			require.NoError(t, err)

			_, err = remote.Convert(context.Background(), []byte("x"), "video/mp4")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
			assert.Equal(t, tt.wantHTTP, apperrors.GetHTTPCode(err))
			assert.Equal(t, tt.wantRetryable, apperrors.IsRetryable(err))
		})
	}
}

func TestRemote_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	remote, err := NewRemote(RemoteOptions{URL: url, Timeout: 200 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = remote.Convert(context.Background(), []byte("x"), "video/mp4")
	assert.Equal(t, apperrors.ErrCodeExternalService, apperrors.GetCode(err))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestMapFFmpegError(t *testing.T) {
	tests := []struct {
		err  error
		want apperrors.ErrorCode
	}{
		{ffmpeg.ErrFFmpegNotFound, apperrors.ErrCodeTranscoderUnavailable},
		{ffmpeg.NewProcessingError("input_validation", "in", ffmpeg.ErrNoAudioStream, ""), apperrors.ErrCodeUnsupportedMedia},
		{ffmpeg.NewProcessingError("metadata_extraction", "in", ffmpeg.ErrInvalidMediaFile, ""), apperrors.ErrCodeUnsupportedMedia},
		{ffmpeg.NewProcessingError("mp3_encoding", "in", io.ErrUnexpectedEOF, "boom"), apperrors.ErrCodeConversionFailed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, apperrors.GetCode(mapFFmpegError(tt.err)), tt.err.Error())
	}
}

func TestFFmpeg_RemovesWorkDir(t *testing.T) {
	tempDir := t.TempDir()
	// A binary that cannot run makes every call fail after the scratch dir exists
	tc := NewFFmpeg(ffmpeg.New("/nonexistent/ffmpeg", "/nonexistent/ffprobe", 0), FFmpegOptions{TempDir: tempDir}, nil)

	_, err := tc.Convert(context.Background(), []byte("video"), "video/mp4")
	require.Error(t, err)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFFmpeg_ConvertsGeneratedVideo(t *testing.T) {
	ff := ffmpeg.New("ffmpeg", "ffprobe", 0)
	if err := ff.ValidateBinaries(); err != nil {
		t.Skipf("FFmpeg binaries not available: %v", err)
	}

	tempDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "in.mkv")
	if err := generateVideo(input); err != nil {
		t.Skipf("Could not generate test video: %v", err)
	}
	data, err := os.ReadFile(input)
	require.NoError(t, err)

	tc := NewFFmpeg(ff, FFmpegOptions{TempDir: tempDir, ProbeInput: true, Encode: ffmpeg.DefaultEncodeOptions()}, nil)
	out, err := tc.Convert(context.Background(), data, "video/mkv")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "ID3") || out[0] == 0xFF, "expected MP3 data")

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
