package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/data/repository"
	"soccer-school/internal/dto/request"
	"soccer-school/internal/dto/response"
	"soccer-school/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, userID uuid.UUID, reservationID string) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error)
}

type reservationService struct {
	repo      *repository.Repository
	maxActive int
	log       *zap.Logger
}

func NewReservationService(repo *repository.Repository, maxActive int, log *zap.Logger) ReservationService {
	if maxActive < 1 {
		maxActive = 3
	}
	return &reservationService{
		repo:      repo,
		maxActive: maxActive,
		log:       log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	slotID, err := uuid.Parse(req.PracticeSlotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %s", ErrSlotNotFound, req.PracticeSlotID)
	}

	// 2. Slot must exist
	slot, err := s.repo.PracticeSlot.FindByID(ctx, slotID)
	if err != nil {
		s.log.Error("Failed to load slot for reservation", zap.Error(err))
		return nil, fmt.Errorf("find slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	// 3. Manually closed or cancelled slots take no reservations
	if slot.Status.IsManual() {
		return nil, ErrSlotUnavailable
	}

	// 4. Full check against the effective status
	if slot.EffectiveStatus() == entity.SlotStatusFull {
		return nil, ErrSlotFull
	}

	// 5. One active reservation per slot per member
	existing, err := s.repo.Reservation.FindActiveByUserAndSlot(ctx, userID, slotID)
	if err != nil {
		s.log.Error("Failed to check duplicate reservation", zap.Error(err))
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateReservation
	}

	// 6. Active reservation cap across all slots
	activeCount, err := s.repo.Reservation.CountActiveByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count active reservations", zap.Error(err))
		return nil, fmt.Errorf("count active reservations: %w", err)
	}
	if activeCount >= int64(s.maxActive) {
		return nil, ErrReservationLimit
	}

	// 7. Insert and take the seat atomically. A concurrent winner leaves
	// no capacity behind and the repo reports it.
	reservation := &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:         userID,
		PracticeSlotID: slotID,
		Status:         entity.ReservationStatusActive,
	}

	if err := s.repo.Reservation.CreateAndIncrementSlot(ctx, reservation); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			s.log.Info("Reservation lost capacity race",
				zap.String("slot_id", slotID.String()),
				zap.String("user_id", userID.String()))
			return nil, ErrSlotFull
		}
		s.log.Error("Failed to create reservation", zap.Error(err))
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("slot_id", slotID.String()),
		zap.String("user_id", userID.String()))

	// Re-read the slot so the response shows the post-booking counter
	slot, err = s.repo.PracticeSlot.FindByID(ctx, slotID)
	if err != nil {
		s.log.Warn("Failed to reload slot after reservation", zap.Error(err))
		slot = nil
	}

	resp := response.ReservationToResponse(reservation, slot)
	return &resp, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, userID uuid.UUID, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %s", ErrReservationNotFound, reservationID)
	}

	reservation, err := s.repo.Reservation.CancelAndDecrementSlot(ctx, id, userID, time.Now())
	if err != nil {
		s.log.Error("Failed to cancel reservation",
			zap.String("reservation_id", reservationID), zap.Error(err))
		return nil, fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}
	if reservation == nil {
		// Either the id is unknown, owned by someone else, or already
		// cancelled. All of those read as not found to the caller.
		return nil, ErrReservationNotFound
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID.String()))

	slot, err := s.repo.PracticeSlot.FindByID(ctx, reservation.PracticeSlotID)
	if err != nil {
		s.log.Warn("Failed to reload slot after cancel", zap.Error(err))
		slot = nil
	}

	resp := response.ReservationToResponse(reservation, slot)
	return &resp, nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID uuid.UUID) ([]response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindActiveByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := make([]response.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		slot, err := s.repo.PracticeSlot.FindByID(ctx, reservation.PracticeSlotID)
		if err != nil {
			s.log.Warn("Failed to load slot for reservation listing",
				zap.String("slot_id", reservation.PracticeSlotID.String()), zap.Error(err))
			slot = nil
		}
		out = append(out, response.ReservationToResponse(reservation, slot))
	}

	return out, nil
}
