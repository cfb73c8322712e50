// internal/api/handlers.go
package api

import (
	"context"
	"net/http"
	"time"

	apperrors "github.com/Gajjar-Mohit/backend/internal/errors"
	"github.com/Gajjar-Mohit/backend/internal/models"
	"github.com/Gajjar-Mohit/backend/internal/services"
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// how long a socket may stay silent before sending its request
const wsRequestWait = 60 * time.Second

// TranscriptGenerator runs the transcript pipeline for one video.
type TranscriptGenerator interface {
	Generate(ctx context.Context, videoURL string, report services.ProgressFunc) (*models.GenerationResult, error)
}

// Dependencies are the long lived collaborators of the handlers.
type Dependencies struct {
	Generator      TranscriptGenerator
	Progress       *services.ProgressService
	Metrics        *utils.MetricsCollector
	TranslatorName string
	Logger         *utils.Logger
}

// Handler serves the HTTP and WebSocket API.
type Handler struct {
	generator      TranscriptGenerator
	progress       *services.ProgressService
	sockets        *WebSocketManager
	metrics        *utils.MetricsCollector
	translatorName string
	response       *ResponseHelper
	logger         *utils.Logger
}

func NewHandler(deps Dependencies) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = utils.GetLogger()
	}
	progress := deps.Progress
	if progress == nil {
		progress = services.NewProgressService()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = utils.GetMetricsCollector()
	}
	return &Handler{
		generator:      deps.Generator,
		progress:       progress,
		sockets:        NewWebSocketManager(logger),
		metrics:        metrics,
		translatorName: deps.TranslatorName,
		response:       NewResponseHelper(logger),
		logger:         logger,
	}
}

// Sockets exposes the WebSocket manager for shutdown.
func (h *Handler) Sockets() *WebSocketManager {
	return h.sockets
}

// GenerateTranscript handles POST /generate_transcript.
func (h *Handler) GenerateTranscript(c *gin.Context) {
	var req models.GenerateTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.response.BadRequest(c, msgNoVideoURL, apperrors.NewValidationError("invalid request body", err))
		return
	}
	if req.VideoURL == "" {
		h.response.BadRequest(c, msgNoVideoURL, apperrors.NewValidationError("video_url is empty", nil))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.VideoURL, nil)
	if err != nil {
		if !apperrors.IsTranscriptUnavailable(err) {
			h.logger.Error("unexpected pipeline error", utils.Fields{"error": err.Error()})
		}
		h.response.InternalError(c, msgTranscriptNotFound, err)
		return
	}

	h.response.Success(c, result.Response())
}

// GenerateTranscriptWebSocket handles GET /ws/generate_transcript. The
// client sends one {"video_url": ...} message and receives progress frames
// followed by a single result or error frame.
func (h *Handler) GenerateTranscriptWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", utils.Fields{"error": err.Error()})
		return
	}

	// the request id is client controlled; task ids must be unique
	taskID := uuid.New().String()
	requestID := c.GetString("request_id")
	client := newWebSocketClient(conn, taskID)
	h.sockets.register(client)
	defer h.sockets.unregister(client)

	var req models.GenerateTranscriptRequest
	_ = conn.SetReadDeadline(time.Now().Add(wsRequestWait))
	if err := conn.ReadJSON(&req); err != nil || req.VideoURL == "" {
		_ = client.SendError(msgNoVideoURL)
		client.closeNormal()
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	// the client has nothing more to say; a failed read means it left
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	tracker := h.progress.CreateTracker(taskID)
	defer h.progress.RemoveTracker(taskID)
	updates := tracker.Subscribe()
	defer tracker.Unsubscribe(updates)

	type outcome struct {
		result *models.GenerationResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := h.generator.Generate(ctx, req.VideoURL, tracker.Report)
		done <- outcome{result: result, err: err}
	}()

	for {
		select {
		case update := <-updates:
			h.sendProgress(client, update)
		case out := <-done:
			for drained := false; !drained; {
				select {
				case update := <-updates:
					h.sendProgress(client, update)
				default:
					drained = true
				}
			}
			if out.err != nil {
				tracker.Fail(out.err.Error())
				h.logger.Warn(msgTranscriptNotFound, utils.Fields{
					"task_id":    taskID,
					"request_id": requestID,
					"error":      out.err.Error(),
				})
				_ = client.SendError(msgTranscriptNotFound)
			} else {
				tracker.Complete("")
				_ = client.SendJSON(resultFrame(taskID, out.result))
			}
			client.closeNormal()
			return
		}
	}
}

func (h *Handler) sendProgress(client *WebSocketClient, update services.ProgressUpdate) {
	if update.Status != services.StatusRunning {
		return
	}
	_ = client.SendJSON(gin.H{
		"type":     "progress",
		"task_id":  client.taskID,
		"stage":    update.Stage,
		"progress": update.Progress,
	})
}

func resultFrame(taskID string, result *models.GenerationResult) gin.H {
	resp := result.Response()
	return gin.H{
		"type":          "result",
		"task_id":       taskID,
		"video_id":      result.VideoID,
		"language_code": result.LanguageCode,
		"translated":    result.Translated,
		"transcript":    resp.Transcript,
		"key_sentences": resp.KeySentences,
		"keywords":      resp.Keywords,
	}
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"translator": h.translatorName,
	})
}

// Metrics handles GET /metrics.
func (h *Handler) Metrics(c *gin.Context) {
	h.progress.CleanupCompletedTasks(10 * time.Minute)

	snapshot := h.metrics.GetMetrics()
	snapshot["websocket"] = h.sockets.GetStatus()
	snapshot["active_tasks"] = h.progress.ActiveCount()
	c.JSON(http.StatusOK, snapshot)
}
