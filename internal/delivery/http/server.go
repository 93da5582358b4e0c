package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/delivery/http/handler"
	"github.com/complaint-map/internal/delivery/http/middleware"
	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/repository/upload"
)

// HealthChecker reports whether a backing service is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handlers groups every route handler of the API
type Handlers struct {
	Complaint  *handler.ComplaintHandler
	Map        *handler.MapHandler
	Stats      *handler.StatsHandler
	Solution   *handler.SolutionHandler
	AirQuality *handler.AirQualityHandler
	Search     *handler.SearchHandler
	City       *handler.CityHandler
	Solar      *handler.SolarHandler
}

// Server - fiber HTTP server
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	store    HealthChecker
}

// NewServer builds the fiber app with middlewares and routes
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers, store HealthChecker) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Complaint Map",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    upload.MaxPhotoSize + 1<<20,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		store:    store,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the fiber app for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestIDs())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	if s.config.Server.RateLimit > 0 {
		s.app.Use(middleware.RateLimit(s.config.Server.RateLimit))
	}
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.health)
	api.Get("/city", s.handlers.City.GetCity)

	// nearby is registered before :id so it is not parsed as an id
	api.Post("/complaints", s.handlers.Complaint.Submit)
	api.Get("/complaints", s.handlers.Complaint.List)
	api.Get("/complaints/nearby", s.handlers.Complaint.Nearby)
	api.Get("/complaints/:id", s.handlers.Complaint.Get)
	api.Post("/complaints/:id/votes", s.handlers.Complaint.Vote)

	api.Get("/map", s.handlers.Map.GetMap)
	api.Get("/stats", s.handlers.Stats.GetStatistics)
	api.Get("/solutions", s.handlers.Solution.GetSolutions)

	api.Get("/air-quality", s.handlers.AirQuality.GetHeatmap)
	api.Get("/geocode", s.handlers.Search.Geocode)

	api.Post("/solar/plan", s.handlers.Solar.Plan)
}

// health godoc
// @Summary Liveness and store health
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (s *Server) health(c *fiber.Ctx) error {
	status, code := "healthy", fiber.StatusOK
	if s.store != nil {
		if err := s.store.Health(c.Context()); err != nil {
			s.logger.Warn("Store health check failed", zap.Error(err))
			status, code = "degraded", fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now().UTC(),
	})
}

// Start blocks serving on the configured address
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler maps fiber errors (unknown route, body too large) onto
// the AppError envelope.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return utils.SendError(c, errors.New(errorCode(code), err.Error(), code))
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
