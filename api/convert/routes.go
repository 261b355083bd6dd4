package convert

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
)

// RegisterRoutes registers the convert route on the given group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, maxMemory int64) {
	router.POST("/convert", Post(deps, maxMemory))
}
