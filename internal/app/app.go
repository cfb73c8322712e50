// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gajjar-Mohit/backend/internal/api"
	"github.com/Gajjar-Mohit/backend/internal/config"
	"github.com/Gajjar-Mohit/backend/internal/di"
	"github.com/Gajjar-Mohit/backend/internal/services"
	"github.com/Gajjar-Mohit/backend/internal/translator"
	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/Gajjar-Mohit/backend/internal/youtube"
	"github.com/gin-gonic/gin"

	// translation providers register themselves
	_ "github.com/Gajjar-Mohit/backend/internal/translator/providers/google"
	_ "github.com/Gajjar-Mohit/backend/internal/translator/providers/googlecloud"
	_ "github.com/Gajjar-Mohit/backend/internal/translator/providers/openai"
)

// Container keys.
const (
	ServiceConfig      = "config"
	ServiceMetrics     = "metrics"
	ServiceYouTube     = "youtube"
	ServiceTranslation = "translation"
	ServiceAnalyzer    = "analyzer"
	ServiceTranscript  = "transcript"
	ServiceProgress    = "progress"
)

const fallbackProvider = "google"

const shutdownTimeout = 30 * time.Second

// InitServices builds every long lived service and registers it in container.
func InitServices(ctx context.Context, cfg *config.Config, container *di.Container) error {
	logger := utils.GetLogger()
	metrics := utils.GetMetricsCollector()
	container.Register(ServiceConfig, cfg)
	container.Register(ServiceMetrics, metrics)

	ytOpts := youtube.Options{
		HTTPClient: &http.Client{Timeout: cfg.FetchTimeout},
		Languages:  cfg.TranscriptLanguages,
		Logger:     logger,
	}
	if cfg.YouTubeAPIKey != "" {
		verifier, err := youtube.NewDataAPIVerifier(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			return fmt.Errorf("youtube data api: %w", err)
		}
		ytOpts.Verifier = verifier
	}
	ytClient := youtube.New(ytOpts)
	container.Register(ServiceYouTube, ytClient)

	translation := services.NewTranslationService(newProvider(cfg, logger))
	container.Register(ServiceTranslation, translation)

	analyzer := services.NewAnalyzerService(cfg.NumSentences, cfg.NumKeywords)
	container.Register(ServiceAnalyzer, analyzer)

	transcripts := services.NewTranscriptService(ytClient, translation, analyzer).
		WithMetrics(utils.NewAPIMetrics(metrics, logger))
	container.Register(ServiceTranscript, transcripts)

	container.Register(ServiceProgress, services.NewProgressService())

	logger.Info("services initialized", utils.Fields{
		"services":   container.GetNames(),
		"translator": translation.ProviderName(),
		"languages":  cfg.TranscriptLanguages,
	})
	return nil
}

// newProvider returns the configured translation provider, falling back to
// the keyless one when it cannot be initialized. It returns nil only when
// no provider works, in which case transcripts are never translated.
func newProvider(cfg *config.Config, logger *utils.Logger) translator.Provider {
	provider, err := translator.GetProvider(cfg.TranslatorProvider, cfg.TranslatorConfig())
	if err == nil {
		return provider
	}
	logger.Warn("translation provider unavailable, using fallback", utils.Fields{
		"provider": cfg.TranslatorProvider,
		"fallback": fallbackProvider,
		"error":    err.Error(),
	})

	provider, err = translator.GetProvider(fallbackProvider, map[string]string{
		"timeout": cfg.FetchTimeout.String(),
	})
	if err != nil {
		logger.Error("no translation provider available", utils.Fields{"error": err.Error()})
		return nil
	}
	return provider
}

// BuildHandler assembles the API handler from the registered services.
func BuildHandler(container *di.Container) (*api.Handler, error) {
	transcripts, err := di.Resolve[*services.TranscriptService](container, ServiceTranscript)
	if err != nil {
		return nil, err
	}
	translation, err := di.Resolve[*services.TranslationService](container, ServiceTranslation)
	if err != nil {
		return nil, err
	}
	progress, err := di.Resolve[*services.ProgressService](container, ServiceProgress)
	if err != nil {
		return nil, err
	}
	metrics, err := di.Resolve[*utils.MetricsCollector](container, ServiceMetrics)
	if err != nil {
		return nil, err
	}

	return api.NewHandler(api.Dependencies{
		Generator:      transcripts,
		Progress:       progress,
		Metrics:        metrics,
		TranslatorName: translation.ProviderName(),
		Logger:         utils.GetLogger(),
	}), nil
}

// App is the running HTTP server.
type App struct {
	server  *http.Server
	handler *api.Handler
	logger  *utils.Logger
}

// New wires the services and the router for cfg.
func New(ctx context.Context, cfg *config.Config, container *di.Container) (*App, error) {
	if cfg.DebugMode {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := InitServices(ctx, cfg, container); err != nil {
		return nil, err
	}
	handler, err := BuildHandler(container)
	if err != nil {
		return nil, err
	}

	return &App{
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           api.SetupRouter(handler, cfg.DebugMode),
			ReadHeaderTimeout: 10 * time.Second,
		},
		handler: handler,
		logger:  utils.GetLogger(),
	}, nil
}

// Handler returns the HTTP handler of the app.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", utils.Fields{"addr": a.server.Addr})
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.handler.Sockets().Shutdown()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	a.logger.Info("server stopped", nil)
	return nil
}
