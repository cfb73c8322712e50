// internal/api/middleware.go
package api

import (
	"net/http"
	"time"

	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

var (
	allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	allowedHeaders = []string{"Content-Type", "Authorization"}
)

// corsMiddleware permits every origin.
func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    allowedMethods,
		AllowHeaders:    allowedHeaders,
		MaxAge:          12 * time.Hour,
	})
}

// corsHeaders is applied to every response right before its headers are
// written, whether or not the request carried an Origin.
func corsHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
	h.Set("Access-Control-Allow-Methods", "GET,PUT,POST,DELETE,OPTIONS")
}

// headerHookWriter runs hook once, before the status line is sent.
type headerHookWriter struct {
	gin.ResponseWriter
	hook func(http.Header)
	done bool
}

func (w *headerHookWriter) apply() {
	if !w.done && !w.Written() {
		w.done = true
		w.hook(w.Header())
	}
}

func (w *headerHookWriter) WriteHeaderNow() {
	w.apply()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *headerHookWriter) Write(data []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(data)
}

func (w *headerHookWriter) WriteString(s string) (int, error) {
	w.apply()
	return w.ResponseWriter.WriteString(s)
}

func (w *headerHookWriter) Flush() {
	w.apply()
	w.ResponseWriter.Flush()
}

// afterResponseHeaders adds headers to every response, including ones
// aborted by later middleware and empty bodies gin flushes itself.
func afterResponseHeaders(hook func(http.Header)) gin.HandlerFunc {
	return func(c *gin.Context) {
		writer := &headerHookWriter{ResponseWriter: c.Writer, hook: hook}
		c.Writer = writer
		c.Next()
		writer.apply()
	}
}

// requestIDMiddleware propagates or assigns an X-Request-ID.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// metricsMiddleware records per-route counters and latency.
func metricsMiddleware(metrics *utils.APIMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(endpoint, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

// requestLogger logs one line per request with the structured logger.
func requestLogger(logger *utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := utils.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.Info("request", fields)
	}
}
