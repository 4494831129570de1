package repository

import (
	"context"
	"fmt"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SlotFilter narrows FindAll. Zero values mean "no filter".
type SlotFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Status   entity.SlotStatus
}

type PracticeSlotRepository interface {
	Create(ctx context.Context, slot *entity.PracticeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PracticeSlot, error)
	FindAll(ctx context.Context, filter SlotFilter) ([]*entity.PracticeSlot, error)
	Update(ctx context.Context, slot *entity.PracticeSlot) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ReconcileStatus writes a derived status back. The WHERE clause keeps
	// manual statuses (closed, cancelled) untouched, so a stale call can
	// never undo a staff decision.
	ReconcileStatus(ctx context.Context, id uuid.UUID, status entity.SlotStatus) error

	// MarkDateFull force-sets every slot on the given date to full and
	// returns how many rows changed.
	MarkDateFull(ctx context.Context, date time.Time) (int64, error)
}

type practiceSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPracticeSlotRepository(db database.PgxIface, log *zap.Logger) PracticeSlotRepository {
	return &practiceSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "practice_slot")),
	}
}

const slotColumns = `id, practice_date, start_time, end_time, capacity, current_bookings, status, notes, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.PracticeSlot, error) {
	var slot entity.PracticeSlot
	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.CurrentBookings,
		&slot.Status,
		&slot.Notes,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *practiceSlotRepository) Create(ctx context.Context, slot *entity.PracticeSlot) error {
	query := `
		INSERT INTO practice_slots (id, practice_date, start_time, end_time, capacity, current_bookings, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.CurrentBookings,
		slot.Status,
		slot.Notes,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create practice slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("create practice slot %s: %w", slot.ID.String(), err)
	}

	return nil
}

func (r *practiceSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PracticeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM practice_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find practice slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find practice slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *practiceSlotRepository) FindAll(ctx context.Context, filter SlotFilter) ([]*entity.PracticeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM practice_slots`

	var conds []string
	var args []any
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("practice_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("practice_date <= $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY practice_date, start_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list practice slots", zap.Error(err))
		return nil, fmt.Errorf("list practice slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.PracticeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan practice slot row", zap.Error(err))
			return nil, fmt.Errorf("scan practice slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *practiceSlotRepository) Update(ctx context.Context, slot *entity.PracticeSlot) error {
	query := `
		UPDATE practice_slots
		SET practice_date = $2, start_time = $3, end_time = $4, capacity = $5,
		    status = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Capacity,
		slot.Status,
		slot.Notes,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update practice slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("update practice slot %s: %w", slot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("practice slot %s not found", slot.ID.String())
	}

	return nil
}

func (r *practiceSlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM practice_slots WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete practice slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return fmt.Errorf("delete practice slot %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("practice slot %s not found", id.String())
	}

	r.log.Info("Practice slot deleted", zap.String("slot_id", id.String()))
	return nil
}

func (r *practiceSlotRepository) ReconcileStatus(ctx context.Context, id uuid.UUID, status entity.SlotStatus) error {
	// Manual statuses are authoritative and excluded from the match.
	query := `
		UPDATE practice_slots
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status NOT IN ('closed', 'cancelled')
	`

	_, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to reconcile practice slot status",
			zap.Error(err),
			zap.String("slot_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("reconcile practice slot %s status to %s: %w", id.String(), string(status), err)
	}

	return nil
}

func (r *practiceSlotRepository) MarkDateFull(ctx context.Context, date time.Time) (int64, error) {
	query := `UPDATE practice_slots SET status = 'full', updated_at = NOW() WHERE practice_date = $1`

	result, err := r.db.Exec(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to mark date full",
			zap.Error(err),
			zap.Time("date", date),
		)
		return 0, fmt.Errorf("mark practice slots on %s full: %w", date.Format("2006-01-02"), err)
	}

	return result.RowsAffected(), nil
}
