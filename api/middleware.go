package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/upload"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request correlation ID
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

const maxRequestIDLength = 128

// CORS allows any origin and answers every preflight before routing
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// RequestSizeLimit caps request bodies at the largest accepted upload plus multipart framing
func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(upload.MaxRequestBytes)
}

// RequestSizeLimitWithSize caps POST, PUT and PATCH bodies at maxBytes
func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequestID assigns every request an ID, reusing a sane client-supplied one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID assigned by RequestID, if any
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger writes one structured line per request
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if id := GetRequestID(c); id != "" {
			fields = append(fields, "request_id", id)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Errorw("Request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warnw("Request rejected", fields...)
		default:
			log.Infow("Request handled", fields...)
		}
	}
}

// Recovery turns a panic into the generic internal error body
func Recovery(log *zap.SugaredLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Errorw("Recovered from panic",
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
			"panic", recovered,
			zap.StackSkip("stack", 3))
		types.SendError(c, http.StatusInternalServerError, apperrors.InternalMessage)
	})
}

// RateLimit applies one shared token bucket to every caller of the group
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			types.SendAppError(c, apperrors.RateLimitError(c.FullPath()))
			return
		}
		c.Next()
	}
}
