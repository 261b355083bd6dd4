package status

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/upload"
)

// Get reports service identity and upload limits
// @Summary      Service status
// @Description  Static service information and the limits applied to uploads
// @Tags         status
// @Produce      json
// @Success      200 {object} types.StatusResponse "Service status"
// @Router       /api/status [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.StatusResponse{
			Status:     types.StatusOK,
			Service:    types.ServiceName,
			Version:    deps.Build.Version,
			Timestamp:  types.Timestamp(),
			Transcoder: deps.Backend(),
			Limits: types.Limits{
				MaxFileSize:        upload.MaxFileSizeLabel,
				MaxFileSizeBytes:   upload.MaxFileSize,
				SupportedFormats:   upload.SupportedExtensions(),
				SupportedMimeTypes: upload.SupportedMediaTypes(),
			},
		})
	}
}
