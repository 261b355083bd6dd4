package docs

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
)

// RegisterRoutes registers the documentation page at the site root
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, swaggerEnabled bool) {
	engine.GET("/", Get(deps, swaggerEnabled))
}
