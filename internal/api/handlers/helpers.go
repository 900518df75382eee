package handlers

import (
	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"
)

// MapApplicationModelToResponse converts a models.Application to a
// dto.ApplicationResponse.
func MapApplicationModelToResponse(app *models.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             app.ID,
		Company:        app.Company,
		Role:           app.Role,
		Location:       app.Location,
		Source:         app.Source,
		Link:           app.Link,
		SalaryMin:      app.SalaryMin,
		SalaryMax:      app.SalaryMax,
		EmploymentType: enumPtr(app.EmploymentType),
		Stage:          enumPtr(app.Stage),
		Status:         enumPtr(app.Status),
		NextActionDate: app.NextActionDate,
		Notes:          app.Notes,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}

func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
