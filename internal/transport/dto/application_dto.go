// internal/transport/dto/application_dto.go
package dto

import (
	"fmt"
	"net/url"
	"time"

	"github.com/edarmartinez/job-hunt-os/internal/models"
)

const maxFieldLength = 200

// --- Application Request DTOs ---

// CreateApplicationRequest defines the structure for creating an application.
// employment_type, stage and status are plain strings here; membership in
// their enums is a business rule checked by the service, not a schema rule.
type CreateApplicationRequest struct {
	Company        string       `json:"company" validate:"required,max=200"`
	Role           string       `json:"role" validate:"required,max=200"`
	Location       *string      `json:"location,omitempty" validate:"omitempty,max=200"`
	Source         *string      `json:"source,omitempty" validate:"omitempty,max=200"`
	Link           *string      `json:"link,omitempty" validate:"omitempty,url,max=500"`
	SalaryMin      *int         `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax      *int         `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	EmploymentType *string      `json:"employment_type,omitempty"`
	Stage          *string      `json:"stage,omitempty"`
	Status         *string      `json:"status,omitempty"`
	NextActionDate *models.Date `json:"next_action_date,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	Authorized     bool         `json:"-"` // Set internally by handler from the auth gate
}

// GetApplicationRequest defines the structure for getting an application by ID.
type GetApplicationRequest struct {
	ID int64 `json:"-" validate:"required"`
}

// UpdateApplicationRequest defines the structure for a partial update.
// Every field is an Optional so that an explicit null (clear the column) is
// distinguishable from an absent key (leave the column untouched).
type UpdateApplicationRequest struct {
	ID             int64                 `json:"-"`
	Company        Optional[string]      `json:"company"`
	Role           Optional[string]      `json:"role"`
	Location       Optional[string]      `json:"location"`
	Source         Optional[string]      `json:"source"`
	Link           Optional[string]      `json:"link"`
	SalaryMin      Optional[int]         `json:"salary_min"`
	SalaryMax      Optional[int]         `json:"salary_max"`
	EmploymentType Optional[string]      `json:"employment_type"`
	Stage          Optional[string]      `json:"stage"`
	Status         Optional[string]      `json:"status"`
	NextActionDate Optional[models.Date] `json:"next_action_date"`
	Notes          Optional[string]      `json:"notes"`
	Authorized     bool                  `json:"-"` // Set internally by handler from the auth gate
}

// ValidateSchema enforces structural constraints that validator tags cannot
// express through Optional fields. Ordered predicates, first failure wins.
func (r *UpdateApplicationRequest) ValidateSchema() error {
	if r.Company.Set && (!r.Company.Valid || r.Company.Value == "") {
		return fmt.Errorf("company must be a non-empty string")
	}
	if r.Company.Valid && len(r.Company.Value) > maxFieldLength {
		return fmt.Errorf("company must be at most %d characters long", maxFieldLength)
	}
	if r.Role.Set && (!r.Role.Valid || r.Role.Value == "") {
		return fmt.Errorf("role must be a non-empty string")
	}
	if r.Role.Valid && len(r.Role.Value) > maxFieldLength {
		return fmt.Errorf("role must be at most %d characters long", maxFieldLength)
	}
	if r.Location.Valid && len(r.Location.Value) > maxFieldLength {
		return fmt.Errorf("location must be at most %d characters long", maxFieldLength)
	}
	if r.Source.Valid && len(r.Source.Value) > maxFieldLength {
		return fmt.Errorf("source must be at most %d characters long", maxFieldLength)
	}
	if r.Link.Valid {
		if err := validateURL(r.Link.Value); err != nil {
			return fmt.Errorf("link must be a valid URL")
		}
	}
	if r.SalaryMin.Valid && r.SalaryMin.Value < 0 {
		return fmt.Errorf("salary_min must be greater than or equal to 0")
	}
	if r.SalaryMax.Valid && r.SalaryMax.Value < 0 {
		return fmt.Errorf("salary_max must be greater than or equal to 0")
	}
	return nil
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("missing scheme or host")
	}
	return nil
}

// DeleteApplicationRequest defines the structure for deleting an application.
type DeleteApplicationRequest struct {
	ID         int64 `json:"-" validate:"required"`
	Authorized bool  `json:"-"` // Set internally by handler from the auth gate
}

// ListApplicationsQuery defines filter, ordering and pagination parameters
// for listing applications. Defaults mirror the list endpoint contract.
type ListApplicationsQuery struct {
	Search   *string `form:"search"`
	Stage    *string `form:"stage"`
	Status   *string `form:"status"`
	Page     int     `form:"page,default=1"`
	PageSize int     `form:"page_size,default=20"`
	OrderBy  string  `form:"order_by,default=created_at"`
	OrderDir string  `form:"order_dir,default=desc"`
}

// Offset returns the zero-indexed row offset for the 1-indexed page.
func (q *ListApplicationsQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ExportQuery defines filter and ordering parameters for the CSV export.
// Pagination is not caller-controlled: the exporter pages internally.
type ExportQuery struct {
	Search   *string `form:"search"`
	Stage    *string `form:"stage"`
	Status   *string `form:"status"`
	OrderBy  string  `form:"order_by,default=created_at"`
	OrderDir string  `form:"order_dir,default=desc"`
}

// --- Application Response DTOs ---

// ApplicationResponse defines the application data returned to the client.
// Optional columns serialize as explicit nulls.
type ApplicationResponse struct {
	ID             int64        `json:"id"`
	Company        string       `json:"company"`
	Role           string       `json:"role"`
	Location       *string      `json:"location"`
	Source         *string      `json:"source"`
	Link           *string      `json:"link"`
	SalaryMin      *int         `json:"salary_min"`
	SalaryMax      *int         `json:"salary_max"`
	EmploymentType *string      `json:"employment_type"`
	Stage          *string      `json:"stage"`
	Status         *string      `json:"status"`
	NextActionDate *models.Date `json:"next_action_date"`
	Notes          *string      `json:"notes"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ListApplicationsResponse is the paginated envelope for the list endpoint.
type ListApplicationsResponse struct {
	Items    []ApplicationResponse `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}
