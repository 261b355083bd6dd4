package upload

import (
	"path/filepath"
	"strings"

	apperrors "github.com/killallgit/converter-api/pkg/errors"
)

// Request is an accepted upload. It is immutable once constructed and
// its size is always the length of its payload.
type Request struct {
	mediaType string
	filename  string
	data      []byte
}

// NewRequest builds a Request; used by Validate and by callers that
// bypass multipart parsing (the convert CLI)
func NewRequest(filename, mediaType string, data []byte) Request {
	return Request{filename: filename, mediaType: mediaType, data: data}
}

// MediaType returns the effective media type
func (r Request) MediaType() string { return r.mediaType }

// Filename returns the client supplied filename
func (r Request) Filename() string { return r.filename }

// Size returns the payload length in bytes
func (r Request) Size() int64 { return int64(len(r.data)) }

// Data returns the payload. Callers must not modify it.
func (r Request) Data() []byte { return r.data }

// Result is the outcome of validation: exactly one of accepted or rejected
type Result struct {
	request   Request
	rejection *apperrors.AppError
}

// Accepted wraps a valid request
func Accepted(r Request) Result {
	return Result{request: r}
}

// Rejected wraps a validation failure
func Rejected(reason string) Result {
	return Result{rejection: apperrors.ValidationError(reason)}
}

// Request returns the accepted request and true, or false when rejected
func (r Result) Request() (Request, bool) {
	return r.request, r.rejection == nil
}

// Rejection returns the validation error, or nil when accepted
func (r Result) Rejection() *apperrors.AppError {
	return r.rejection
}

// Validate checks a parsed field against the allow-lists and size ceiling.
// It has no side effects.
func Validate(field Field) Result {
	file, ok := field.(FileField)
	if !ok {
		return Rejected(MsgNoFile)
	}

	ext := filepath.Ext(file.Filename)
	declared := normalizeMediaType(file.MediaType)

	if !IsSupportedMediaType(declared) && !IsSupportedExtension(ext) {
		return Rejected(MsgInvalidType)
	}

	if int64(len(file.Data)) > MaxFileSize {
		return Rejected(MsgTooLarge)
	}

	return Accepted(NewRequest(file.Filename, EffectiveMediaType(declared, file.Filename), file.Data))
}

// EffectiveMediaType prefers the declared type and falls back to the
// filename extension when nothing was declared
func EffectiveMediaType(declared, filename string) string {
	if declared = normalizeMediaType(declared); declared != "" {
		return declared
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if IsSupportedExtension(ext) {
		return "video/" + ext
	}
	return ""
}

// SuggestedFilename returns the download name for a converted upload:
// the original base name with its last extension replaced by .mp3
func SuggestedFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "converted"
	}
	return base + ".mp3"
}
