package convert

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/upload"
	apperrors "github.com/killallgit/converter-api/pkg/errors"
)

// DefaultMaxMemory is how much of a multipart body is kept in memory before spilling to disk
const DefaultMaxMemory = 32 << 20

// Post handles video to MP3 conversion requests
// @Summary      Convert a video to MP3
// @Description  Upload a video in the "video" multipart field (MP4, AVI, MOV, MKV, WEBM, FLV, WMV, at most 50MB) and receive its audio track as an MP3 download
// @Tags         convert
// @Accept       multipart/form-data
// @Produce      audio/mpeg
// @Produce      json
// @Param        video formData file true "Video file"
// @Success      200 {file} binary "MP3 audio"
// @Failure      400 {object} types.APIError "Missing file, unsupported type or file too large"
// @Failure      429 {object} types.APIError "Too many conversion requests"
// @Failure      500 {object} types.APIError "Conversion failed"
// @Failure      502 {object} types.APIError "Remote transcoder failed"
// @Failure      504 {object} types.APIError "Conversion timed out"
// @Router       /api/convert [post]
func Post(deps *types.Dependencies, maxMemory int64) gin.HandlerFunc {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}

	return func(c *gin.Context) {
		log := deps.Log()
		if deps.Stats != nil {
			deps.Stats.RecordRequest()
		}

		form, err := parseForm(c, maxMemory)
		if err != nil {
			reject(c, deps, err)
			return
		}
		defer form.RemoveAll()

		field, err := upload.ParseField(form, upload.FieldName)
		if err != nil {
			log.Errorw("Failed to read upload", "error", err)
			types.SendAppError(c, apperrors.Internal(err))
			return
		}

		result := upload.Validate(field)
		req, ok := result.Request()
		if !ok {
			reject(c, deps, result.Rejection())
			return
		}
		if deps.Stats != nil {
			deps.Stats.RecordAccepted()
		}

		if deps.Converter == nil {
			types.SendAppError(c, apperrors.TranscoderUnavailable("none", nil))
			return
		}

		log.Infow("Converting upload",
			"filename", req.Filename(),
			"media_type", req.MediaType(),
			"bytes", req.Size(),
			"backend", deps.Converter.Backend())

		outcome, err := deps.Converter.Convert(c.Request.Context(), req)
		if err != nil {
			log.Errorw("Conversion failed",
				"filename", req.Filename(),
				"backend", deps.Converter.Backend(),
				"code", apperrors.GetCode(err),
				"error", err)
			_ = c.Error(err)
			types.SendAppError(c, err)
			return
		}

		types.SendMP3(c, outcome.Filename, outcome.Data)
	}
}

// parseForm parses the multipart body, mapping an over-limit body to the
// too-large rejection and anything else unparseable to the missing-file one
func parseForm(c *gin.Context, maxMemory int64) (*multipart.Form, error) {
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return nil, apperrors.ValidationError(upload.MsgTooLarge).WithCause(err)
		}
		return nil, apperrors.ValidationError(upload.MsgNoFile).WithCause(err)
	}
	return c.Request.MultipartForm, nil
}

func reject(c *gin.Context, deps *types.Dependencies, err error) {
	if deps.Stats != nil {
		deps.Stats.RecordRejected()
	}
	deps.Log().Infow("Upload rejected", "reason", apperrors.PublicMessage(err), "error", err)
	types.SendAppError(c, err)
}
