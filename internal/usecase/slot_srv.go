package usecase

import (
	"context"
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

type SlotService interface {
	// Public
	ListSlots(ctx context.Context, filter *request.SlotFilterRequest) ([]response.PracticeSlotResponse, error)
	GetSlot(ctx context.Context, slotID string) (*response.PracticeSlotResponse, error)

	// Admin
	CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.PracticeSlotResponse, error)
	UpdateSlot(ctx context.Context, slotID string, req *request.UpdateSlotRequest) (*response.PracticeSlotResponse, error)
	DeleteSlot(ctx context.Context, slotID string) error
	MarkDateFull(ctx context.Context, req *request.MarkDateFullRequest) (int64, error)
}

type slotService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSlotService(repo *repository.Repository, log *zap.Logger) SlotService {
	return &slotService{
		repo: repo,
		log:  log.With(zap.String("service", "slot")),
	}
}

func (s *slotService) ListSlots(ctx context.Context, filter *request.SlotFilterRequest) ([]response.PracticeSlotResponse, error) {
	repoFilter, err := buildSlotFilter(filter)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.PracticeSlot.FindAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to list practice slots", zap.Error(err))
		return nil, fmt.Errorf("list slots: %w", err)
	}

	out := make([]response.PracticeSlotResponse, 0, len(slots))
	for _, slot := range slots {
		s.reconcile(ctx, slot)
		out = append(out, response.SlotToResponse(slot))
	}

	return out, nil
}

func (s *slotService) GetSlot(ctx context.Context, slotID string) (*response.PracticeSlotResponse, error) {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	s.reconcile(ctx, slot)

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) CreateSlot(ctx context.Context, req *request.CreateSlotRequest) (*response.PracticeSlotResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create slot validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	date, startTime, endTime, err := parseSlotSchedule(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 2. Build and persist
	now := time.Now()
	slot := &entity.PracticeSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:            date,
		StartTime:       startTime,
		EndTime:         endTime,
		Capacity:        req.Capacity,
		CurrentBookings: 0,
		Status:          entity.SlotStatusOpen,
		Notes:           req.Notes,
	}

	if err := s.repo.PracticeSlot.Create(ctx, slot); err != nil {
		s.log.Error("Failed to create practice slot", zap.Error(err))
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.log.Info("Practice slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("date", req.Date))

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) UpdateSlot(ctx context.Context, slotID string, req *request.UpdateSlotRequest) (*response.PracticeSlotResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update slot validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	date, startTime, endTime, err := parseSlotSchedule(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 2. Load current state
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	// 3. Capacity can never undercut bookings already taken
	if req.Capacity < slot.CurrentBookings {
		return nil, NewFieldError("capacity",
			fmt.Sprintf("capacity %d is below current bookings %d", req.Capacity, slot.CurrentBookings))
	}

	slot.Date = date
	slot.UpdatedAt = time.Now()
	slot.StartTime = startTime
	slot.EndTime = endTime
	slot.Capacity = req.Capacity
	slot.Notes = req.Notes
	if req.Status != nil {
		slot.Status = entity.SlotStatus(*req.Status)
	} else {
		// Re-derive from the new capacity
		slot.Status = entity.ResolveStatus(slot.Status, slot.Capacity, slot.CurrentBookings)
	}

	if err := s.repo.PracticeSlot.Update(ctx, slot); err != nil {
		s.log.Error("Failed to update practice slot",
			zap.String("slot_id", slot.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("update slot %s: %w", slotID, err)
	}

	resp := response.SlotToResponse(slot)
	return &resp, nil
}

func (s *slotService) DeleteSlot(ctx context.Context, slotID string) error {
	slot, err := s.findSlot(ctx, slotID)
	if err != nil {
		return err
	}

	if err := s.repo.PracticeSlot.Delete(ctx, slot.ID); err != nil {
		s.log.Error("Failed to delete practice slot",
			zap.String("slot_id", slot.ID.String()), zap.Error(err))
		return fmt.Errorf("delete slot %s: %w", slotID, err)
	}

	s.log.Info("Practice slot deleted", zap.String("slot_id", slot.ID.String()))
	return nil
}

func (s *slotService) MarkDateFull(ctx context.Context, req *request.MarkDateFullRequest) (int64, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return 0, NewValidationError(errs)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, NewFieldError("date", "must be in YYYY-MM-DD format")
	}

	affected, err := s.repo.PracticeSlot.MarkDateFull(ctx, date)
	if err != nil {
		s.log.Error("Failed to mark date full", zap.String("date", req.Date), zap.Error(err))
		return 0, fmt.Errorf("mark date %s full: %w", req.Date, err)
	}

	s.log.Info("Marked all slots on date full",
		zap.String("date", req.Date), zap.Int64("slots", affected))
	return affected, nil
}

// findSlot parses the ID and loads the slot, translating a miss into
// ErrSlotNotFound.
func (s *slotService) findSlot(ctx context.Context, slotID string) (*entity.PracticeSlot, error) {
	id, err := uuid.Parse(slotID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %s", ErrSlotNotFound, slotID)
	}

	slot, err := s.repo.PracticeSlot.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load practice slot", zap.String("slot_id", slotID), zap.Error(err))
		return nil, fmt.Errorf("find slot %s: %w", slotID, err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	return slot, nil
}

// reconcile writes a derived status back to storage when the stored value
// drifted. Failures are logged and swallowed; the caller still gets the
// correct effective status in its response.
func (s *slotService) reconcile(ctx context.Context, slot *entity.PracticeSlot) {
	effective := slot.EffectiveStatus()
	if !entity.NeedsReconciliation(slot.Status, effective) {
		return
	}

	if err := s.repo.PracticeSlot.ReconcileStatus(ctx, slot.ID, effective); err != nil {
		s.log.Warn("Slot status reconciliation failed",
			zap.String("slot_id", slot.ID.String()),
			zap.String("status", string(effective)),
			zap.Error(err))
	}
}

func buildSlotFilter(filter *request.SlotFilterRequest) (repository.SlotFilter, error) {
	var out repository.SlotFilter
	if filter == nil {
		return out, nil
	}

	if filter.DateFrom != "" {
		from, err := time.Parse("2006-01-02", filter.DateFrom)
		if err != nil {
			return out, NewFieldError("date_from", "must be in YYYY-MM-DD format")
		}
		out.DateFrom = &from
	}

	if filter.DateTo != "" {
		to, err := time.Parse("2006-01-02", filter.DateTo)
		if err != nil {
			return out, NewFieldError("date_to", "must be in YYYY-MM-DD format")
		}
		out.DateTo = &to
	}

	if filter.Status != "" {
		out.Status = entity.SlotStatus(filter.Status)
	}

	return out, nil
}

// parseSlotSchedule validates the date and HH:MM time pair.
func parseSlotSchedule(dateStr, startStr, endStr string) (time.Time, string, string, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, "", "", NewFieldError("date", "must be in YYYY-MM-DD format")
	}

	start, err := time.Parse("15:04", startStr)
	if err != nil {
		return time.Time{}, "", "", NewFieldError("start_time", "must be in HH:MM format")
	}

	end, err := time.Parse("15:04", endStr)
	if err != nil {
		return time.Time{}, "", "", NewFieldError("end_time", "must be in HH:MM format")
	}

	if !end.After(start) {
		return time.Time{}, "", "", NewFieldError("end_time", "must be after start_time")
	}

	return date, start.Format("15:04"), end.Format("15:04"), nil
}
