package storage

import (
	"context"

	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"
)

// ApplicationRepository defines the interface for application data operations.
// The repository owns identity and timestamp stamping: Create assigns the id
// and sets both timestamps, Update restamps updated_at.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error)
	Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, id int64) error

	// List returns one page of the filtered, ordered set. Count returns the
	// size of the full filtered set, independent of pagination.
	List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, error)
	Count(ctx context.Context, q *dto.ListApplicationsQuery) (int64, error)
}
