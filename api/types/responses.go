package types

import "github.com/killallgit/converter-api/internal/services/conversion"

// Status constants for API responses
const (
	StatusOK = "ok"
)

// ServiceName identifies the service in status payloads
const ServiceName = "Video to MP3 Converter API"

// APIError is the body of every error response
type APIError struct {
	Error     bool   `json:"error" example:"true"`
	Message   string `json:"message" example:"No video file provided"`
	Timestamp string `json:"timestamp" example:"2025-01-01T12:00:00Z"` // RFC 3339, UTC
}

// Limits describes what the convert endpoint accepts
type Limits struct {
	MaxFileSize        string   `json:"maxFileSize" example:"50MB"`
	MaxFileSizeBytes   int64    `json:"maxFileSizeBytes" example:"52428800"`
	SupportedFormats   []string `json:"supportedFormats"`
	SupportedMimeTypes []string `json:"supportedMimeTypes"`
}

// StatusResponse for the status endpoint
type StatusResponse struct {
	Status     string `json:"status" example:"ok"`
	Service    string `json:"service"`
	Version    string `json:"version" example:"1.0.0"`
	Timestamp  string `json:"timestamp"`
	Transcoder string `json:"transcoder" example:"placeholder"`
	Limits     Limits `json:"limits"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status        string                   `json:"status" example:"ok"`
	Timestamp     string                   `json:"timestamp"`
	Uptime        string                   `json:"uptime" example:"1h2m3s"`
	UptimeSeconds int64                    `json:"uptimeSeconds"`
	Transcoder    string                   `json:"transcoder" example:"ffmpeg"`
	Stats         conversion.StatsSnapshot `json:"stats"`
}

// VersionResponse for the version endpoint
type VersionResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}
