package status

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
)

// RegisterRoutes registers the status route on the given group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/status", Get(deps))
}
