package version

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
)

// Get handles version requests
// @Summary      Build information
// @Tags         health
// @Produce      json
// @Success      200 {object} types.VersionResponse "Build information"
// @Router       /version [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionResponse{
			Name:      types.ServiceName,
			Version:   deps.Build.Version,
			GitCommit: deps.Build.GitCommit,
			BuildTime: deps.Build.BuildTime,
			GoVersion: runtime.Version(),
		})
	}
}
