package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/foodexpress/delivery-api/docs"
	"github.com/foodexpress/delivery-api/internal/api/handler"
	"github.com/foodexpress/delivery-api/internal/api/middleware"
	"github.com/foodexpress/delivery-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer serves.
type Deps struct {
	Auth      ports.AuthService
	Cart      ports.CartService
	Catalog   ports.Catalog
	Readiness map[string]handler.Pinger
	JWTSecret string
	Log       zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "foodexpress",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(d.Auth)
	cartHandler := handler.NewCartHandler(d.Cart)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	device := middleware.Device()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login, device)
	e.POST("/auth/logout", authHandler.Logout, device)
	e.POST("/auth/session/restore", authHandler.Restore, device)
	e.GET("/me", authHandler.Me, middleware.Auth(d.JWTSecret))

	// --- Catalog ---
	e.GET("/menu", catalogHandler.Menu)
	e.GET("/restaurants", catalogHandler.Restaurants)

	// --- Cart (one per device) ---
	cart := e.Group("/cart", device)
	cart.GET("", cartHandler.Get)
	cart.POST("/items", cartHandler.Add)
	cart.DELETE("/items/:product_id", cartHandler.Remove)
	cart.DELETE("/notification", cartHandler.ClearNotification)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
