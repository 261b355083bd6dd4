package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/services/conversion"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Uptime, active transcoder and conversion counters
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse "Service is healthy"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:     types.StatusOK,
			Timestamp:  types.Timestamp(),
			Transcoder: deps.Backend(),
		}

		// Stats are optional so the endpoint works before the pipeline is wired
		if deps != nil && deps.Stats != nil {
			response.Uptime, response.UptimeSeconds = uptime(deps.Stats)
			response.Stats = deps.Stats.Snapshot()
		}

		c.JSON(http.StatusOK, response)
	}
}

func uptime(stats *conversion.Stats) (string, int64) {
	d := stats.Uptime().Truncate(time.Second)
	return d.String(), int64(d / time.Second)
}
