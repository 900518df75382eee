package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// --- Employment Type Enum ---
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

// IsValid reports whether the value is a member of the fixed enum.
func (et EmploymentType) IsValid() bool {
	switch et {
	case EmploymentFullTime, EmploymentContract, EmploymentIntern:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for EmploymentType
func (et *EmploymentType) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan EmploymentType: value is not string or []byte")
		}
	}
	v := EmploymentType(strVal)
	if !v.IsValid() {
		return fmt.Errorf("invalid EmploymentType value: %s", strVal)
	}
	*et = v
	return nil
}

// Value implements the driver.Valuer interface for EmploymentType
func (et EmploymentType) Value() (driver.Value, error) {
	return string(et), nil
}

// --- Stage Enum ---
type Stage string

const (
	StageWishlist Stage = "wishlist"
	StageApplied  Stage = "applied"
	StageOA       Stage = "oa"
	StagePhone    Stage = "phone"
	StageOnsite   Stage = "onsite"
	StageOffer    Stage = "offer"
	StageRejected Stage = "rejected"
	StageGhosted  Stage = "ghosted"
)

// IsValid reports whether the value is a member of the fixed enum.
func (s Stage) IsValid() bool {
	switch s {
	case StageWishlist, StageApplied, StageOA, StagePhone,
		StageOnsite, StageOffer, StageRejected, StageGhosted:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for Stage
func (s *Stage) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Stage: value is not string or []byte")
		}
	}
	v := Stage(strVal)
	if !v.IsValid() {
		return fmt.Errorf("invalid Stage value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for Stage
func (s Stage) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Status Enum ---
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// IsValid reports whether the value is a member of the fixed enum.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusClosed:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for Status
func (s *Status) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Status: value is not string or []byte")
		}
	}
	v := Status(strVal)
	if !v.IsValid() {
		return fmt.Errorf("invalid Status value: %s", strVal)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for Status
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

// Application represents one tracked job application.
// ID and both timestamps are owned by the store; callers never set them.
type Application struct {
	ID             int64           `json:"id" db:"id"`
	Company        string          `json:"company" db:"company"`
	Role           string          `json:"role" db:"role"`
	Location       *string         `json:"location" db:"location"`
	Source         *string         `json:"source" db:"source"`
	Link           *string         `json:"link" db:"link"`
	SalaryMin      *int            `json:"salary_min" db:"salary_min"`
	SalaryMax      *int            `json:"salary_max" db:"salary_max"`
	EmploymentType *EmploymentType `json:"employment_type" db:"employment_type"`
	Stage          *Stage          `json:"stage" db:"stage"`
	Status         *Status         `json:"status" db:"status"`
	NextActionDate *Date           `json:"next_action_date" db:"next_action_date"`
	Notes          *string         `json:"notes" db:"notes"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
