package types

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
)

// Handler utility functions shared by all handlers

// Timestamp returns the current time in the format used by every payload
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewAPIError builds an error body stamped with the current time
func NewAPIError(message string) APIError {
	return APIError{
		Error:     true,
		Message:   message,
		Timestamp: Timestamp(),
	}
}

// SendError sends an error body with the given status and aborts the chain
func SendError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewAPIError(message))
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

// SendAppError maps an error to its HTTP status and public message.
// Anything that is not an AppError becomes a generic 500.
func SendAppError(c *gin.Context, err error) {
	SendError(c, apperrors.GetHTTPCode(err), apperrors.PublicMessage(err))
}

// SendMP3 sends converted audio as a download
func SendMP3(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", ContentDisposition(filename))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "audio/mpeg", data)
}

// ContentDisposition builds an attachment header value. Quotes, backslashes
// and control characters never reach the quoted form; non-ASCII names are
// also sent as an RFC 5987 filename* parameter.
func ContentDisposition(filename string) string {
	if filename == "" {
		filename = "converted.mp3"
	}

	var ascii strings.Builder
	needsExtended := false
	for _, r := range filename {
		switch {
		case r == utf8.RuneError:
			ascii.WriteByte('_')
			needsExtended = true
		case r == '"' || r == '\\' || r < 0x20 || r == 0x7f:
			ascii.WriteByte('_')
		case r > 0x7f:
			ascii.WriteByte('_')
			needsExtended = true
		default:
			ascii.WriteRune(r)
		}
	}

	value := fmt.Sprintf(`attachment; filename="%s"`, ascii.String())
	if needsExtended {
		value += "; filename*=UTF-8''" + encodeRFC5987(filename)
	}
	return value
}

// encodeRFC5987 percent-encodes everything outside attr-char
func encodeRFC5987(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isAttrChar(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&0x0f])
	}
	return b.String()
}

func isAttrChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", ch) >= 0
}
