// internal/storage/postgres/applications.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edarmartinez/job-hunt-os/internal/models"
	"github.com/edarmartinez/job-hunt-os/internal/storage"
	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier abstracts the pgx query surface so repos work against both a pool
// and a transaction.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const applicationColumns = `id, company, role, location, source, link, salary_min, salary_max, employment_type, stage, status, next_action_date, notes, created_at, updated_at`

// ApplicationRepo implements storage.ApplicationRepository using PostgreSQL.
type ApplicationRepo struct {
	db  Querier
	log *zap.Logger
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool, log *zap.Logger) *ApplicationRepo {
	return &ApplicationRepo{db: db, log: log}
}

// Compile-time check to ensure ApplicationRepo implements ApplicationRepository
var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID,
		&app.Company,
		&app.Role,
		&app.Location,
		&app.Source,
		&app.Link,
		&app.SalaryMin,
		&app.SalaryMax,
		&app.EmploymentType,
		&app.Stage,
		&app.Status,
		&app.NextActionDate,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByID retrieves a specific application by its ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to get application", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get application %d: %w", id, err)
	}
	return app, nil
}

// Create inserts a new application. The database assigns the id and stamps
// created_at and updated_at from the same clock reading.
func (r *ApplicationRepo) Create(ctx context.Context, req *dto.CreateApplicationRequest) (*models.Application, error) {
	query := fmt.Sprintf(`
		INSERT INTO applications (company, role, location, source, link, salary_min, salary_max, employment_type, stage, status, next_action_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s
	`, applicationColumns)

	row := r.db.QueryRow(ctx, query,
		req.Company,
		req.Role,
		req.Location,
		req.Source,
		req.Link,
		req.SalaryMin,
		req.SalaryMax,
		req.EmploymentType,
		req.Stage,
		req.Status,
		req.NextActionDate,
		req.Notes,
	)

	app, err := scanApplication(row)
	if err != nil {
		r.log.Error("failed to create application", zap.String("company", req.Company), zap.Error(err))
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	r.log.Info("application created", zap.Int64("id", app.ID))
	return app, nil
}

// Update applies a partial merge: only fields present in the request change.
// An explicit null clears the column; an absent field is untouched.
// updated_at is restamped on every call.
func (r *ApplicationRepo) Update(ctx context.Context, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	var setClauses []string
	args := []interface{}{}

	appendSet := func(column string, opt func() (any, bool)) {
		value, set := opt()
		if !set {
			return
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	appendSet("company", optArg(req.Company))
	appendSet("role", optArg(req.Role))
	appendSet("location", optArg(req.Location))
	appendSet("source", optArg(req.Source))
	appendSet("link", optArg(req.Link))
	appendSet("salary_min", optArg(req.SalaryMin))
	appendSet("salary_max", optArg(req.SalaryMax))
	appendSet("employment_type", optArg(req.EmploymentType))
	appendSet("stage", optArg(req.Stage))
	appendSet("status", optArg(req.Status))
	appendSet("next_action_date", optArg(req.NextActionDate))
	appendSet("notes", optArg(req.Notes))

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`
		UPDATE applications
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args), applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("failed to update application", zap.Int64("id", req.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update application %d: %w", req.ID, err)
	}

	r.log.Info("application updated", zap.Int64("id", app.ID))
	return app, nil
}

// optArg adapts an Optional field for the SET builder: (nil, true) for an
// explicit null, (value, true) when set, (_, false) when absent.
func optArg[T any](o dto.Optional[T]) func() (any, bool) {
	return func() (any, bool) {
		if !o.Set {
			return nil, false
		}
		if !o.Valid {
			return nil, true
		}
		return o.Value, true
	}
}

// Delete removes an application by its ID.
func (r *ApplicationRepo) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete application", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete application %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	r.log.Info("application deleted", zap.Int64("id", id))
	return nil
}

// List retrieves one page of applications matching the query's filters, in
// its requested order.
func (r *ApplicationRepo) List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, error) {
	conditions, args := buildFilterConditions(q)

	query, err := buildListQuery(conditions, &args, q)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to query applications", zap.Error(err))
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		r.log.Error("failed to scan applications", zap.Error(err))
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}

	if apps == nil {
		apps = []models.Application{} // Return empty slice, not nil
	}
	return apps, nil
}

// Count returns the size of the full filtered set, independent of pagination.
func (r *ApplicationRepo) Count(ctx context.Context, q *dto.ListApplicationsQuery) (int64, error) {
	conditions, args := buildFilterConditions(q)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COUNT(*) FROM applications`)
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	var total int64
	if err := r.db.QueryRow(ctx, queryBuilder.String(), args...).Scan(&total); err != nil {
		r.log.Error("failed to count applications", zap.Error(err))
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return total, nil
}
