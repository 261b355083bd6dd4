package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"go.uber.org/zap"
)

const (
	remoteServiceName    = "remote-transcoder"
	maxRemoteResponse    = 200 << 20
	remoteJitterInterval = 5 * time.Millisecond
)

// RemoteOptions configures the HTTP transcoding client
type RemoteOptions struct {
	URL          string
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
}

// Remote delegates conversion to an HTTP service that accepts the raw video
// as the request body and answers with MP3 bytes
type Remote struct {
	url    string
	client heimdall.Doer
	log    *zap.SugaredLogger
}

// NewRemote creates a remote transcoder with constant-backoff retries on
// network errors and 5xx replies
func NewRemote(opts RemoteOptions, log *zap.SugaredLogger) (*Remote, error) {
	if opts.URL == "" {
		return nil, apperrors.ConfigError("transcoder.remote.url", "required for the remote backend")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	backoff := heimdall.NewConstantBackoff(opts.RetryBackoff, remoteJitterInterval)
	retrier := heimdall.NewRetrier(backoff)

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(opts.Timeout),
		httpclient.WithRetrier(retrier),
		httpclient.WithRetryCount(opts.Retries),
	)

	return &Remote{url: opts.URL, client: client, log: log}, nil
}

// Name implements Transcoder
func (r *Remote) Name() string { return BackendRemote }

// Convert implements Transcoder
func (r *Remote) Convert(ctx context.Context, data []byte, mediaType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := r.client.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		if ctx.Err() != nil {
			return nil, apperrors.ConversionFailed("Conversion was interrupted", ctx.Err())
		}
		return nil, apperrors.ExternalServiceError(remoteServiceName, err).AsRetryable()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponse))
	if err != nil {
		return nil, apperrors.ExternalServiceError(remoteServiceName, err).AsRetryable()
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if len(body) == 0 {
			return nil, apperrors.ExternalServiceError(remoteServiceName, fmt.Errorf("empty response body"))
		}
		return body, nil

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		r.log.Warnw("Remote transcoder is busy", "status", resp.StatusCode)
		return nil, apperrors.ExternalServiceError(remoteServiceName, fmt.Errorf("upstream returned %s", resp.Status)).AsRetryable()

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, apperrors.UnsupportedMedia("The video could not be converted", fmt.Errorf("upstream returned %s: %s", resp.Status, snippet(body)))

	default:
		return nil, apperrors.ExternalServiceError(remoteServiceName, fmt.Errorf("upstream returned %s: %s", resp.Status, snippet(body)))
	}
}

func snippet(body []byte) string {
	const limit = 256
	if len(body) > limit {
		body = body[:limit]
	}
	return string(bytes.TrimSpace(body))
}
