package upload

import "strings"

const (
	// FieldName is the multipart field that carries the video
	FieldName = "video"

	// MaxFileSize is the largest accepted upload in bytes (50 MiB)
	MaxFileSize int64 = 50 * 1024 * 1024

	// MaxFileSizeLabel is MaxFileSize as shown to clients
	MaxFileSizeLabel = "50MB"

	// MaxRequestBytes caps the whole request body: the file plus multipart framing
	MaxRequestBytes = MaxFileSize + 1<<20
)

// Client-facing validation messages
const (
	MsgNoFile      = "No video file provided"
	MsgInvalidType = "Invalid video file type. Supported formats: MP4, AVI, MOV, MKV, WEBM, FLV, WMV"
	MsgTooLarge    = "File too large. Maximum size is " + MaxFileSizeLabel
)

var supportedExtensions = []string{"mp4", "avi", "mov", "mkv", "webm", "flv", "wmv"}

var supportedMediaTypes = []string{
	"video/mp4",
	"video/avi",
	"video/mov",
	"video/mkv",
	"video/webm",
	"video/wmv",
	"video/flv",
}

// SupportedExtensions returns the accepted file extensions without dots
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// SupportedMediaTypes returns the accepted declared content types
func SupportedMediaTypes() []string {
	return append([]string(nil), supportedMediaTypes...)
}

// IsSupportedMediaType reports whether a declared content type is allowed.
// Parameters such as "; codecs=..." are ignored.
func IsSupportedMediaType(mediaType string) bool {
	mediaType = normalizeMediaType(mediaType)
	for _, t := range supportedMediaTypes {
		if t == mediaType {
			return true
		}
	}
	return false
}

// IsSupportedExtension reports whether ext (with or without a leading dot) is allowed
func IsSupportedExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, e := range supportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ExtensionForMediaType returns a file extension (with dot) for a declared type,
// or "" when the type is not one of ours
func ExtensionForMediaType(mediaType string) string {
	mediaType = normalizeMediaType(mediaType)
	if !IsSupportedMediaType(mediaType) {
		return ""
	}
	return "." + strings.TrimPrefix(mediaType, "video/")
}

func normalizeMediaType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
