package repository

import (
	"context"
	"fmt"

	"soccer-school/internal/data/entity"
	"soccer-school/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	FindAll(ctx context.Context) ([]*entity.Application, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Application, error)

	// UpdateStatusIfPending performs the terminal transition as a conditional
	// update. It reports false when the row was no longer pending, which is
	// how a concurrent second decision loses.
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus, rejectedReason *string) (bool, error)

	UpdateAdminMemo(ctx context.Context, id uuid.UUID, memo string) error
}

type applicationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewApplicationRepository(db database.PgxIface, log *zap.Logger) ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: log.With(zap.String("repository", "application")),
	}
}

const applicationColumns = `id, user_id, name, name_kana, grade, email, phone, parent_name, notes, status, rejected_reason, admin_memo, created_at, updated_at`

func scanApplication(row pgx.Row) (*entity.Application, error) {
	var app entity.Application
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Name,
		&app.NameKana,
		&app.Grade,
		&app.Email,
		&app.Phone,
		&app.ParentName,
		&app.Notes,
		&app.Status,
		&app.RejectedReason,
		&app.AdminMemo,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *entity.Application) error {
	query := `
		INSERT INTO applications (id, user_id, name, name_kana, grade, email, phone, parent_name, notes, status, rejected_reason, admin_memo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.UserID,
		app.Name,
		app.NameKana,
		app.Grade,
		app.Email,
		app.Phone,
		app.ParentName,
		app.Notes,
		app.Status,
		app.RejectedReason,
		app.AdminMemo,
		app.CreatedAt,
		app.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create application",
			zap.Error(err),
			zap.String("user_id", app.UserID.String()),
		)
		return fmt.Errorf("create application for user %s: %w", app.UserID.String(), err)
	}

	return nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find application by ID",
			zap.Error(err),
			zap.String("application_id", id.String()),
		)
		return nil, fmt.Errorf("find application by ID %s: %w", id.String(), err)
	}

	return app, nil
}

func (r *applicationRepository) FindAll(ctx context.Context) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list applications", zap.Error(err))
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows, r.log)
}

func (r *applicationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list applications by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list applications for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectApplications(rows, r.log)
}

func collectApplications(rows pgx.Rows, log *zap.Logger) ([]*entity.Application, error) {
	var apps []*entity.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			log.Error("Failed to scan application row", zap.Error(err))
			return nil, fmt.Errorf("scan application row: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus, rejectedReason *string) (bool, error) {
	query := `
		UPDATE applications
		SET status = $2, rejected_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, status, rejectedReason)
	if err != nil {
		r.log.Error("Failed to update application status",
			zap.Error(err),
			zap.String("application_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("update application %s status to %s: %w", id.String(), string(status), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *applicationRepository) UpdateAdminMemo(ctx context.Context, id uuid.UUID, memo string) error {
	query := `UPDATE applications SET admin_memo = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, memo)
	if err != nil {
		r.log.Error("Failed to update application memo",
			zap.Error(err),
			zap.String("application_id", id.String()),
		)
		return fmt.Errorf("update application %s memo: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("application %s not found", id.String())
	}

	return nil
}
