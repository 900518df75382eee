package routes

import (
	"github.com/edarmartinez/job-hunt-os/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes wires the application endpoints. Reads are open;
// mutations pass through the optional rate limiter (the auth gate itself is
// applied engine-wide and consumed by the service layer).
func RegisterApplicationRoutes(rg *gin.RouterGroup, h *handlers.ApplicationHandler, mutationLimiter gin.HandlerFunc) {
	apps := rg.Group("/applications")
	{
		apps.GET("", h.ListApplications)
		apps.GET("/:id", h.GetApplication)

		mutations := apps.Group("")
		if mutationLimiter != nil {
			mutations.Use(mutationLimiter)
		}
		mutations.POST("", h.CreateApplication)
		mutations.PUT("/:id", h.UpdateApplication)
		mutations.DELETE("/:id", h.DeleteApplication)
	}

	rg.GET("/export.csv", h.ExportCSV)
}
