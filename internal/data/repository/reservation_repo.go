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

type ReservationRepository interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error)
	FindActiveByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (*entity.Reservation, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// CreateAndIncrementSlot inserts the reservation and bumps the owning
	// slot's booking counter in one transaction. The counter update is
	// conditional on current_bookings < capacity; when another writer wins
	// the race the insert is rolled back and ErrCapacityExceeded returned.
	CreateAndIncrementSlot(ctx context.Context, reservation *entity.Reservation) error

	// CancelAndDecrementSlot marks the reservation cancelled and decrements
	// the slot counter (floored at zero) in one transaction. A stored full
	// status flips back to open; manual statuses are left alone. Returns
	// nil when no active reservation matches (id, userID).
	CancelAndDecrementSlot(ctx context.Context, reservationID, userID uuid.UUID, cancelledAt time.Time) (*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, user_id, practice_slot_id, status, cancelled_at, created_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.PracticeSlotID,
		&res.Status,
		&res.CancelledAt,
		&res.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *reservationRepository) FindActiveByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1 AND practice_slot_id = $2 AND status = 'active'
	`

	res, err := scanReservation(r.db.QueryRow(ctx, query, userID, slotID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active reservation",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("slot_id", slotID.String()),
		)
		return nil, fmt.Errorf("find active reservation for user %s slot %s: %w", userID.String(), slotID.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1 AND status = 'active'`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active reservations",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count active reservations for user %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) CreateAndIncrementSlot(ctx context.Context, reservation *entity.Reservation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reservation transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertQuery := `
		INSERT INTO reservations (id, user_id, practice_slot_id, status, cancelled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, insertQuery,
		reservation.ID,
		reservation.UserID,
		reservation.PracticeSlotID,
		reservation.Status,
		reservation.CancelledAt,
		reservation.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("slot_id", reservation.PracticeSlotID.String()),
		)
		return fmt.Errorf("insert reservation: %w", err)
	}

	// Conditional increment: only succeeds while a seat is left. Anything
	// else means a concurrent writer filled the slot first.
	incrementQuery := `
		UPDATE practice_slots
		SET current_bookings = current_bookings + 1,
		    status = CASE WHEN current_bookings + 1 >= capacity THEN 'full' ELSE 'open' END,
		    updated_at = NOW()
		WHERE id = $1 AND current_bookings < capacity AND status NOT IN ('closed', 'cancelled')
	`

	result, err := tx.Exec(ctx, incrementQuery, reservation.PracticeSlotID)
	if err != nil {
		r.log.Error("Failed to increment slot bookings",
			zap.Error(err),
			zap.String("slot_id", reservation.PracticeSlotID.String()),
		)
		return fmt.Errorf("increment slot %s bookings: %w", reservation.PracticeSlotID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrCapacityExceeded
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation transaction: %w", err)
	}

	return nil
}

func (r *reservationRepository) CancelAndDecrementSlot(ctx context.Context, reservationID, userID uuid.UUID, cancelledAt time.Time) (*entity.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cancellation transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cancelQuery := `
		UPDATE reservations
		SET status = 'cancelled', cancelled_at = $3
		WHERE id = $1 AND user_id = $2 AND status = 'active'
		RETURNING ` + reservationColumns

	reservation, err := scanReservation(tx.QueryRow(ctx, cancelQuery, reservationID, userID, cancelledAt))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("cancel reservation %s: %w", reservationID.String(), err)
	}

	// Decrement floored at zero. A stored full status flips back to open
	// once a seat frees up; closed and cancelled stay as staff set them.
	decrementQuery := `
		UPDATE practice_slots
		SET current_bookings = GREATEST(current_bookings - 1, 0),
		    status = CASE
		      WHEN status = 'full' AND GREATEST(current_bookings - 1, 0) < capacity THEN 'open'
		      ELSE status
		    END,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err = tx.Exec(ctx, decrementQuery, reservation.PracticeSlotID)
	if err != nil {
		r.log.Error("Failed to decrement slot bookings",
			zap.Error(err),
			zap.String("slot_id", reservation.PracticeSlotID.String()),
		)
		return nil, fmt.Errorf("decrement slot %s bookings: %w", reservation.PracticeSlotID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cancellation transaction: %w", err)
	}

	return reservation, nil
}
