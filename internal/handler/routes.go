package handler

import (
	"github.com/dafibh/finboard/finboard-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes. authenticate must store the user ID
// in the request context; the rate limiter runs after it.
func RegisterRoutes(e *echo.Echo, authenticate echo.MiddlewareFunc, rateLimiter *middleware.RateLimiter, summaryHandler *SummaryHandler, workCalculatorHandler *WorkCalculatorHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authenticate, middleware.RateLimitMiddleware(rateLimiter))

	api.GET("/summary", summaryHandler.GetSummary)
	api.GET("/work-calculator", workCalculatorHandler.Calculate)
}
