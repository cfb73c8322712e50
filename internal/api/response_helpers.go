// internal/api/response_helpers.go
package api

import (
	"net/http"

	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgNoVideoURL         = "No video URL provided"
	msgTranscriptNotFound = "Failed to generate transcript. No transcripts available in requested languages."
)

// ResponseHelper writes the flat JSON bodies the API returns.
type ResponseHelper struct {
	logger *utils.Logger
}

func NewResponseHelper(logger *utils.Logger) *ResponseHelper {
	return &ResponseHelper{logger: logger}
}

func (rh *ResponseHelper) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error responds with {"error": message}. cause is only logged.
func (rh *ResponseHelper) Error(c *gin.Context, statusCode int, message string, cause error) {
	fields := utils.Fields{
		"status":     statusCode,
		"path":       c.Request.URL.Path,
		"request_id": rh.getRequestID(c),
	}
	if cause != nil {
		fields["error"] = cause.Error()
		_ = c.Error(cause)
	}
	rh.logger.Warn(message, fields)

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}

func (rh *ResponseHelper) BadRequest(c *gin.Context, message string, cause error) {
	rh.Error(c, http.StatusBadRequest, message, cause)
}

func (rh *ResponseHelper) InternalError(c *gin.Context, message string, cause error) {
	rh.Error(c, http.StatusInternalServerError, message, cause)
}

func (rh *ResponseHelper) getRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
