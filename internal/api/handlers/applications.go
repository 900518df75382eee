// internal/api/handlers/applications.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edarmartinez/job-hunt-os/internal/api/middleware"
	"github.com/edarmartinez/job-hunt-os/internal/services"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationHandler holds dependencies for application operations.
type ApplicationHandler struct {
	service services.ApplicationService
	log     *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		log:     log,
	}
}

// ListApplications godoc
// @Summary      List applications
// @Description  Retrieves a filtered, ordered, paginated page of applications plus the total filtered count.
// @Tags         applications
// @Produce      json
// @Param        search query string false "Case-insensitive substring over company or role"
// @Param        stage query string false "Filter by stage" Enums(wishlist, applied, oa, phone, onsite, offer, rejected, ghosted)
// @Param        status query string false "Filter by status" Enums(active, closed)
// @Param        page query int false "Page (1-indexed)" default(1)
// @Param        page_size query int false "Page size (1..100)" default(20)
// @Param        order_by query string false "Sort column" Enums(created_at, updated_at, next_action_date) default(created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success      200 {object}  dto.ListApplicationsResponse "Page of applications"
// @Failure      400 {object}  map[string]string "Invalid query parameter"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var q dto.ListApplicationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	items, total, err := h.service.List(c.Request.Context(), &q)
	if err != nil {
		h.respondServiceError(c, err, "Failed to list applications")
		return
	}

	responses := make([]dto.ApplicationResponse, 0, len(items))
	for i := range items {
		responses = append(responses, MapApplicationModelToResponse(&items[i]))
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{
		Items:    responses,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

// GetApplication godoc
// @Summary      Get an application by ID
// @Tags         applications
// @Produce      json
// @Param        id path int true "Application ID"
// @Success      200 {object}  dto.ApplicationResponse "Successfully retrieved application"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	req := dto.GetApplicationRequest{ID: id}
	app, err := h.service.GetByID(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, err, "Failed to retrieve application")
		return
	}

	c.JSON(http.StatusOK, MapApplicationModelToResponse(app))
}

// CreateApplication godoc
// @Summary      Create a new application
// @Description  Adds a new application record. The store assigns the id and both timestamps.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application body dto.CreateApplicationRequest true "Application details"
// @Success      201 {object}  dto.ApplicationResponse "Application created successfully"
// @Failure      400 {object}  map[string]string "Domain rule violated"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      422 {object}  map[string]string "Malformed payload"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications [post]
// @Security     ApiKeyAuth
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.Authorized = middleware.IsAuthorized(c)

	app, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, err, "Failed to create application")
		return
	}

	c.JSON(http.StatusCreated, MapApplicationModelToResponse(app))
}

// UpdateApplication godoc
// @Summary      Partially update an application
// @Description  Merges only the supplied fields; an explicit null clears a field, an absent field is untouched. updated_at always advances.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id path int true "Application ID"
// @Param        application body dto.UpdateApplicationRequest true "Fields to change"
// @Success      200 {object}  dto.ApplicationResponse "Application updated successfully"
// @Failure      400 {object}  map[string]string "Domain rule violated"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Failure      422 {object}  map[string]string "Malformed payload"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id} [put]
// @Security     ApiKeyAuth
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	var req dto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = id
	req.Authorized = middleware.IsAuthorized(c)

	app, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		h.respondServiceError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, MapApplicationModelToResponse(app))
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Description  Hard-deletes the record; there is no tombstone.
// @Tags         applications
// @Param        id path int true "Application ID"
// @Success      204 {object}  nil "Application deleted successfully"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id} [delete]
// @Security     ApiKeyAuth
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID format"})
		return
	}

	req := dto.DeleteApplicationRequest{ID: id, Authorized: middleware.IsAuthorized(c)}
	if err := h.service.Delete(c.Request.Context(), &req); err != nil {
		h.respondServiceError(c, err, "Failed to delete application")
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportCSV godoc
// @Summary      Export the filtered set as CSV
// @Description  Streams a CSV of all applications matching the filter, paginating internally. Validation failures surface before any bytes are sent.
// @Tags         applications
// @Produce      text/csv
// @Param        search query string false "Case-insensitive substring over company or role"
// @Param        stage query string false "Filter by stage"
// @Param        status query string false "Filter by status"
// @Param        order_by query string false "Sort column" default(created_at)
// @Param        order_dir query string false "Sort direction" default(desc)
// @Success      200 {string}  string "CSV stream"
// @Failure      400 {object}  map[string]string "Invalid query parameter"
// @Router       /export.csv [get]
func (h *ApplicationHandler) ExportCSV(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	streamer, err := h.service.ExportCSV(c.Request.Context(), &q)
	if err != nil {
		h.respondServiceError(c, err, "Failed to export applications")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="export.csv"`)
	c.Status(http.StatusOK)

	// Past this point the status line may already be on the wire; a failure
	// just terminates the stream.
	if err := streamer.Stream(c.Request.Context(), c.Writer); err != nil {
		h.log.Warn("csv export stream terminated", zap.Error(err))
	}
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// respondServiceError maps service error kinds to their distinct statuses.
func (h *ApplicationHandler) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
	case errors.Is(err, services.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": services.Reason(err)})
	case errors.Is(err, services.ErrInvalidQueryParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": services.Reason(err)})
	case errors.Is(err, services.ErrSchemaValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": services.Reason(err)})
	default:
		h.log.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
