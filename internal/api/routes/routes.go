// internal/api/routes/routes.go
package routes

import (
	"github.com/edarmartinez/job-hunt-os/internal/api/handlers"
	"github.com/edarmartinez/job-hunt-os/internal/api/middleware"
	"github.com/edarmartinez/job-hunt-os/internal/app"
	"github.com/edarmartinez/job-hunt-os/internal/services"
	"github.com/edarmartinez/job-hunt-os/internal/storage/postgres"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API routes by calling resource-specific
// registration functions.
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// --- Wire repository, service, handler ---
	appRepo := postgres.NewApplicationRepo(app.DBPool, app.Logger)
	appService := services.NewApplicationService(appRepo, app.Validator, app.Logger)
	appHandler := handlers.NewApplicationHandler(appService, app.Logger)

	// --- Middleware ---
	// The rate limiter guards mutating routes only, and only when redis is
	// configured.
	var mutationLimiter gin.HandlerFunc
	if app.RedisClient != nil {
		mutationLimiter = middleware.RateLimit(app.RedisClient, app.Logger)
	}

	// --- Register Resource Routes ---
	RegisterApplicationRoutes(apiV1, appHandler, mutationLimiter)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)
}
