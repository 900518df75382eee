package services

import (
	"errors"
	"fmt"

	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/storage"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"
)

// sortableColumns whitelists order_by values. Deliberately narrower than the
// filterable columns.
var sortableColumns = map[string]struct{}{
	"created_at":       {},
	"updated_at":       {},
	"next_action_date": {},
}

// checkBusinessRules enforces the domain rules over a well-formed payload,
// in a fixed order, short-circuiting on the first failure.
func checkBusinessRules(salaryMin, salaryMax *int, employmentType, stage, status *string) error {
	if salaryMin != nil && salaryMax != nil && *salaryMin > *salaryMax {
		return fmt.Errorf("%w: salary_min must be <= salary_max", ErrDomainValidation)
	}
	if employmentType != nil && !models.EmploymentType(*employmentType).IsValid() {
		return fmt.Errorf("%w: Invalid employment_type", ErrDomainValidation)
	}
	if stage != nil && !models.Stage(*stage).IsValid() {
		return fmt.Errorf("%w: Invalid stage", ErrDomainValidation)
	}
	if status != nil && !models.Status(*status).IsValid() {
		return fmt.Errorf("%w: Invalid status", ErrDomainValidation)
	}
	return nil
}

// validateListQuery rejects bad filter/sort/page input before any storage
// access happens.
func validateListQuery(q *dto.ListApplicationsQuery) error {
	if q.Stage != nil && *q.Stage != "" && !models.Stage(*q.Stage).IsValid() {
		return fmt.Errorf("%w: Invalid stage", ErrInvalidQueryParameter)
	}
	if q.Status != nil && *q.Status != "" && !models.Status(*q.Status).IsValid() {
		return fmt.Errorf("%w: Invalid status", ErrInvalidQueryParameter)
	}
	if _, ok := sortableColumns[q.OrderBy]; !ok {
		return fmt.Errorf("%w: Invalid order_by", ErrInvalidQueryParameter)
	}
	if q.OrderDir != "asc" && q.OrderDir != "desc" {
		return fmt.Errorf("%w: Invalid order_dir", ErrInvalidQueryParameter)
	}
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1", ErrInvalidQueryParameter)
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		return fmt.Errorf("%w: page_size must be between 1 and 100", ErrInvalidQueryParameter)
	}
	return nil
}

// mapRepoError maps storage errors to service errors.
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	return fmt.Errorf("internal error %s: %w", operation, err)
}
