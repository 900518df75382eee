package services

import (
	"context"

	"github.com/edarmartinez/job-hunt-os/internal/export"
	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"
)

// ApplicationService defines the interface for application business logic.
//
// All validation errors are reported before any storage mutation is
// attempted; NotFound is checked before an update or delete applies.
type ApplicationService interface {
	List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, int64, error)
	GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.Application, error)
	Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)
	Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error

	// ExportCSV validates the filter and ordering up front and returns a
	// streamer for the full filtered set. No error after this point is a
	// validation error; a failed stream simply terminates.
	ExportCSV(ctx context.Context, q *dto.ExportQuery) (*export.Streamer, error)
}
