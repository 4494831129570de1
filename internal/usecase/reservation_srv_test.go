package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/dto/request"

	"github.com/google/uuid"
)

func newTestSlot(capacity, bookings int, status entity.SlotStatus) *entity.PracticeSlot {
	now := time.Now()
	return &entity.PracticeSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:            now.AddDate(0, 0, 7),
		StartTime:       "10:00",
		EndTime:         "12:00",
		Capacity:        capacity,
		CurrentBookings: bookings,
		Status:          status,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves a seat in an open slot", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		slot := newTestSlot(5, 0, entity.SlotStatusOpen)
		slots.put(slot)

		resp, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		if resp.Status != string(entity.ReservationStatusActive) {
			t.Errorf("status = %q, want active", resp.Status)
		}
		if resp.Slot == nil {
			t.Fatal("response is missing the slot")
		}
		if resp.Slot.CurrentBookings != 1 {
			t.Errorf("current_bookings = %d, want 1", resp.Slot.CurrentBookings)
		}
	})

	t.Run("last seat flips the slot to FULL", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		slot := newTestSlot(2, 1, entity.SlotStatusOpen)
		slots.put(slot)

		resp, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		if resp.Slot.Status != "FULL" {
			t.Errorf("slot status = %q, want FULL", resp.Slot.Status)
		}
	})

	t.Run("rejects an unknown slot", func(t *testing.T) {
		repo, _, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		_, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
			PracticeSlotID: uuid.New().String(),
		})
		if !errors.Is(err, ErrSlotNotFound) {
			t.Errorf("err = %v, want ErrSlotNotFound", err)
		}
	})

	t.Run("rejects a manually closed slot", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		slot := newTestSlot(5, 0, entity.SlotStatusClosed)
		slots.put(slot)

		_, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if !errors.Is(err, ErrSlotUnavailable) {
			t.Errorf("err = %v, want ErrSlotUnavailable", err)
		}
	})

	t.Run("rejects a full slot", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		slot := newTestSlot(2, 2, entity.SlotStatusOpen)
		slots.put(slot)

		_, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if !errors.Is(err, ErrSlotFull) {
			t.Errorf("err = %v, want ErrSlotFull", err)
		}
	})

	t.Run("rejects a second reservation for the same slot", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		slot := newTestSlot(5, 0, entity.SlotStatusOpen)
		slots.put(slot)
		userID := uuid.New()

		req := &request.CreateReservationRequest{PracticeSlotID: slot.ID.String()}
		if _, err := svc.CreateReservation(ctx, userID, req); err != nil {
			t.Fatalf("first CreateReservation: %v", err)
		}

		_, err := svc.CreateReservation(ctx, userID, req)
		if !errors.Is(err, ErrDuplicateReservation) {
			t.Errorf("err = %v, want ErrDuplicateReservation", err)
		}
	})

	t.Run("enforces the active reservation cap", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())
		userID := uuid.New()

		for i := 0; i < 3; i++ {
			slot := newTestSlot(5, 0, entity.SlotStatusOpen)
			slots.put(slot)
			if _, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
				PracticeSlotID: slot.ID.String(),
			}); err != nil {
				t.Fatalf("reservation %d: %v", i+1, err)
			}
		}

		extra := newTestSlot(5, 0, entity.SlotStatusOpen)
		slots.put(extra)
		_, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
			PracticeSlotID: extra.ID.String(),
		})
		if !errors.Is(err, ErrReservationLimit) {
			t.Errorf("err = %v, want ErrReservationLimit", err)
		}
	})

	t.Run("cancelled reservations do not count toward the cap", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())
		userID := uuid.New()

		var firstID string
		for i := 0; i < 3; i++ {
			slot := newTestSlot(5, 0, entity.SlotStatusOpen)
			slots.put(slot)
			resp, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
				PracticeSlotID: slot.ID.String(),
			})
			if err != nil {
				t.Fatalf("reservation %d: %v", i+1, err)
			}
			if i == 0 {
				firstID = resp.ID
			}
		}

		if _, err := svc.CancelReservation(ctx, userID, firstID); err != nil {
			t.Fatalf("CancelReservation: %v", err)
		}

		slot := newTestSlot(5, 0, entity.SlotStatusOpen)
		slots.put(slot)
		if _, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		}); err != nil {
			t.Errorf("reservation after cancel: %v", err)
		}
	})

	t.Run("validation failure surfaces field errors", func(t *testing.T) {
		repo, _, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())

		_, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{})
		if _, ok := AsValidationError(err); !ok {
			t.Errorf("err = %v, want validation error", err)
		}
	})
}

// Concurrent requests against a slot with C free seats must produce
// exactly C reservations, never more.
func TestCreateReservationConcurrent(t *testing.T) {
	ctx := context.Background()
	repo, slots, _, _, _ := testRepo()
	svc := NewReservationService(repo, 100, testLogger())

	const capacity = 5
	const attempts = 20

	slot := newTestSlot(capacity, 0, entity.SlotStatusOpen)
	slots.put(slot)

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
				PracticeSlotID: slot.ID.String(),
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var won, full int
	for err := range results {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if won != capacity {
		t.Errorf("successful reservations = %d, want %d", won, capacity)
	}
	if full != attempts-capacity {
		t.Errorf("full rejections = %d, want %d", full, attempts-capacity)
	}

	stored := slots.get(slot.ID)
	if stored.CurrentBookings != capacity {
		t.Errorf("current_bookings = %d, want %d", stored.CurrentBookings, capacity)
	}
	if stored.Status != entity.SlotStatusFull {
		t.Errorf("slot status = %q, want full", stored.Status)
	}
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel frees the seat and reopens a full slot", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())
		userID := uuid.New()

		slot := newTestSlot(1, 0, entity.SlotStatusOpen)
		slots.put(slot)

		created, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		if got := slots.get(slot.ID).Status; got != entity.SlotStatusFull {
			t.Fatalf("slot status after booking = %q, want full", got)
		}

		cancelled, err := svc.CancelReservation(ctx, userID, created.ID)
		if err != nil {
			t.Fatalf("CancelReservation: %v", err)
		}
		if cancelled.Status != string(entity.ReservationStatusCancelled) {
			t.Errorf("status = %q, want cancelled", cancelled.Status)
		}
		if cancelled.CancelledAt == nil {
			t.Error("cancelled_at not set")
		}

		stored := slots.get(slot.ID)
		if stored.CurrentBookings != 0 {
			t.Errorf("current_bookings = %d, want 0", stored.CurrentBookings)
		}
		if stored.Status != entity.SlotStatusOpen {
			t.Errorf("slot status = %q, want open", stored.Status)
		}

		// The freed seat can be taken again
		if _, err := svc.CreateReservation(ctx, uuid.New(), &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		}); err != nil {
			t.Errorf("rebooking freed seat: %v", err)
		}
	})

	t.Run("cancelling twice reads as not found", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())
		userID := uuid.New()

		slot := newTestSlot(5, 0, entity.SlotStatusOpen)
		slots.put(slot)

		created, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}

		if _, err := svc.CancelReservation(ctx, userID, created.ID); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		if _, err := svc.CancelReservation(ctx, userID, created.ID); !errors.Is(err, ErrReservationNotFound) {
			t.Errorf("second cancel err = %v, want ErrReservationNotFound", err)
		}
	})

	t.Run("cannot cancel someone else's reservation", func(t *testing.T) {
		repo, slots, _, _, _ := testRepo()
		svc := NewReservationService(repo, 3, testLogger())
		owner := uuid.New()

		slot := newTestSlot(5, 0, entity.SlotStatusOpen)
		slots.put(slot)

		created, err := svc.CreateReservation(ctx, owner, &request.CreateReservationRequest{
			PracticeSlotID: slot.ID.String(),
		})
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}

		if _, err := svc.CancelReservation(ctx, uuid.New(), created.ID); !errors.Is(err, ErrReservationNotFound) {
			t.Errorf("err = %v, want ErrReservationNotFound", err)
		}

		// Seat stays taken
		if got := slots.get(slot.ID).CurrentBookings; got != 1 {
			t.Errorf("current_bookings = %d, want 1", got)
		}
	})
}

func TestGetUserReservations(t *testing.T) {
	ctx := context.Background()
	repo, slots, _, _, _ := testRepo()
	svc := NewReservationService(repo, 3, testLogger())
	userID := uuid.New()

	slot := newTestSlot(5, 0, entity.SlotStatusOpen)
	slots.put(slot)

	if _, err := svc.CreateReservation(ctx, userID, &request.CreateReservationRequest{
		PracticeSlotID: slot.ID.String(),
	}); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	out, err := svc.GetUserReservations(ctx, userID)
	if err != nil {
		t.Fatalf("GetUserReservations: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Slot == nil {
		t.Error("listing is missing slot details")
	}

	other, err := svc.GetUserReservations(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetUserReservations for other user: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("len = %d, want 0", len(other))
	}
}
