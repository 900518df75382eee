package services

import (
	"context"
	"fmt"

	"github.com/edarmartinez/job-hunt-os/internal/export"
	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/storage"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type applicationService struct {
	repo     storage.ApplicationRepository
	validate *validator.Validate
	log      *zap.Logger
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(repo storage.ApplicationRepository, validate *validator.Validate, log *zap.Logger) ApplicationService {
	return &applicationService{repo: repo, validate: validate, log: log}
}

// List returns one page of the filtered set plus the full filtered count.
// Parameters are validated before any storage access.
func (s *applicationService) List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, int64, error) {
	if err := validateListQuery(q); err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		s.log.Error("failed to count applications", zap.Error(err))
		return nil, 0, fmt.Errorf("internal error counting applications: %w", err)
	}

	items, err := s.repo.List(ctx, q)
	if err != nil {
		s.log.Error("failed to list applications", zap.Error(err))
		return nil, 0, fmt.Errorf("internal error listing applications: %w", err)
	}

	return items, total, nil
}

func (s *applicationService) GetByID(ctx context.Context, req *dto.GetApplicationRequest) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(err, "getting application by ID")
	}
	return app, nil
}

// Create validates the payload (auth gate, then schema, then domain rules)
// and inserts the record. The store assigns id and stamps both timestamps.
func (s *applicationService) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if !req.Authorized {
		return nil, ErrUnauthorized
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaValidation, err.Error())
	}
	if err := checkBusinessRules(req.SalaryMin, req.SalaryMax, req.EmploymentType, req.Stage, req.Status); err != nil {
		return nil, err
	}

	app, err := s.repo.Create(ctx, req)
	if err != nil {
		s.log.Error("failed to create application", zap.Error(err))
		return nil, fmt.Errorf("internal error creating application: %w", err)
	}
	return app, nil
}

// Update applies a partial merge: fields absent from the payload keep their
// prior values. Validation runs before the record is touched, and NotFound
// surfaces from the merge itself.
func (s *applicationService) Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	if !req.Authorized {
		return nil, ErrUnauthorized
	}
	if err := req.ValidateSchema(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaValidation, err.Error())
	}
	if err := checkBusinessRules(req.SalaryMin.Ptr(), req.SalaryMax.Ptr(), req.EmploymentType.Ptr(), req.Stage.Ptr(), req.Status.Ptr()); err != nil {
		return nil, err
	}

	app, err := s.repo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating application")
	}
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, req *dto.DeleteApplicationRequest) error {
	if !req.Authorized {
		return ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, req.ID); err != nil {
		return mapRepoError(err, "deleting application")
	}
	return nil
}

// ExportCSV validates the filter and ordering once, then returns a streamer
// that pulls successive pages at the fixed export page size. If validation
// fails no streamer exists, so no bytes are ever written.
func (s *applicationService) ExportCSV(ctx context.Context, q *dto.ExportQuery) (*export.Streamer, error) {
	base := dto.ListApplicationsQuery{
		Search:   q.Search,
		Stage:    q.Stage,
		Status:   q.Status,
		Page:     1,
		PageSize: export.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
	if err := validateListQuery(&base); err != nil {
		return nil, err
	}

	return export.NewStreamer(func(ctx context.Context, page int) ([]models.Application, error) {
		pageQuery := base
		pageQuery.Page = page
		return s.repo.List(ctx, &pageQuery)
	}), nil
}
