// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"time"

	"pulse/config"
	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	defaultAnalyticsTTL = 10 * time.Minute
	defaultInventoryTTL = 5 * time.Minute
)

type RouterParams struct {
	fx.In

	Config           *config.Config
	AuthHandler      *handler.AuthHandler
	FraudHandler     *handler.FraudHandler
	AnalyticsHandler *handler.AnalyticsHandler
	InventoryHandler *handler.InventoryHandler
	CacheHandler     *handler.CacheHandler
	AuthMiddleware   *middleware.AuthMiddleware
	CacheMiddleware  *middleware.CacheMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg              *config.Config
	authHandler      *handler.AuthHandler
	fraudHandler     *handler.FraudHandler
	analyticsHandler *handler.AnalyticsHandler
	inventoryHandler *handler.InventoryHandler
	cacheHandler     *handler.CacheHandler
	authMiddleware   *middleware.AuthMiddleware
	cacheMiddleware  *middleware.CacheMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:              params.Config,
		authHandler:      params.AuthHandler,
		fraudHandler:     params.FraudHandler,
		analyticsHandler: params.AnalyticsHandler,
		inventoryHandler: params.InventoryHandler,
		cacheHandler:     params.CacheHandler,
		authMiddleware:   params.AuthMiddleware,
		cacheMiddleware:  params.CacheMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Fraud scoring requires an authenticated operator
	txGroup := e.Group("/transactions")
	txGroup.Use(r.authMiddleware.Authenticate)
	{
		txGroup.POST("/:id/score", r.fraudHandler.ScoreTransaction)
	}

	// Customer analytics routes; cached since the underlying analyses scan
	// the whole population
	analyticsGroup := e.Group("/analytics")
	analyticsGroup.Use(r.authMiddleware.Authenticate)
	analyticsGroup.Use(r.cacheMiddleware.Handle(r.analyticsTTL()))
	{
		analyticsGroup.GET("/rfm", r.analyticsHandler.SegmentCustomers)
		analyticsGroup.GET("/churn", r.analyticsHandler.DetectChurnRisk)
		analyticsGroup.GET("/customers/:id/clv", r.analyticsHandler.PredictCLV)
		analyticsGroup.GET("/customers/:id/recommendations", r.analyticsHandler.Recommend)
	}

	// Inventory routes
	inventoryGroup := e.Group("/inventory")
	inventoryGroup.Use(r.authMiddleware.Authenticate)
	inventoryGroup.Use(r.cacheMiddleware.Handle(r.inventoryTTL()))
	{
		inventoryGroup.GET("/products/:id/forecast", r.inventoryHandler.ForecastStock)
		inventoryGroup.GET("/products/:id/seasonality", r.inventoryHandler.AnalyzeSeasonality)
		inventoryGroup.GET("/suppliers/ranking", r.inventoryHandler.RankSuppliers)
		inventoryGroup.GET("/reorder-suggestions", r.inventoryHandler.GenerateReorderSuggestions)
	}

	// Cache administration requires the admin role
	cacheGroup := e.Group("/cache")
	cacheGroup.Use(r.authMiddleware.Authenticate)
	cacheGroup.Use(r.authMiddleware.RequireRole("admin"))
	{
		cacheGroup.GET("/stats", r.cacheHandler.Stats)
		cacheGroup.DELETE("", r.cacheHandler.Flush)
		cacheGroup.DELETE("/entries", r.cacheHandler.Invalidate)
	}
}

func (r *router) analyticsTTL() time.Duration {
	if cfg := r.cfg.Cache; cfg != nil && cfg.AnalyticsTTL > 0 {
		return cfg.AnalyticsTTL
	}

	return defaultAnalyticsTTL
}

func (r *router) inventoryTTL() time.Duration {
	if cfg := r.cfg.Cache; cfg != nil && cfg.InventoryTTL > 0 {
		return cfg.InventoryTTL
	}

	return defaultInventoryTTL
}
