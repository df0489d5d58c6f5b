package handlers

import (
	"time"

	"lab_dashboard/internal/logger"
	"lab_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds HTTP-layer tuning taken from configuration.
type Config struct {
	RateLimit   rate.Limit // requests per second per client IP; <= 0 disables limiting
	RateBurst   int
	ViewRefresh time.Duration // default WebSocket refresh cadence
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	if cfg.ViewRefresh <= 0 {
		cfg.ViewRefresh = service.DefaultRefreshInterval
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if h.cfg.RateLimit > 0 {
		router.Use(rateLimiter(h.cfg.RateLimit, h.cfg.RateBurst))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Routing contract, resolved server-side
	router.GET("/view/*path", h.sessionMiddleware, h.getView)

	// View stream over WebSocket, same port
	router.GET("/ws", h.wsSessionMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		h.registerLabRoutes(api)
		h.registerEventRoutes(api)
	}
}

func (h *Handler) registerLabRoutes(api *gin.RouterGroup) {
	labs := api.Group("/labs")
	{
		labs.GET("", h.listLabs)
		labs.GET("/:labId", h.getLab)
		labs.GET("/:labId/computers", h.listComputers)
	}
}

func (h *Handler) registerEventRoutes(api *gin.RouterGroup) {
	events := api.Group("/events")
	{
		events.GET("", h.getEvents)
	}
}
