// internal/api/router.go
package api

import (
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes. CORS headers are set twice: by
// the CORS middleware and again on every response by afterResponseHeaders.
func SetupRouter(handler *Handler, debug bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(afterResponseHeaders(corsHeaders))
	r.Use(requestIDMiddleware())
	if debug {
		r.Use(gin.Logger())
	} else {
		r.Use(requestLogger(handler.logger))
	}
	r.Use(metricsMiddleware(utils.NewAPIMetrics(handler.metrics, handler.logger)))
	r.Use(corsMiddleware())

	r.POST("/generate_transcript", handler.GenerateTranscript)
	r.GET("/ws/generate_transcript", handler.GenerateTranscriptWebSocket)
	r.GET("/health", handler.Health)
	r.GET("/metrics", handler.Metrics)

	return r
}
