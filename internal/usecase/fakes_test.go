package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/data/repository"
	"soccer-school/internal/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testRepo() (*repository.Repository, *fakeSlotRepo, *fakeReservationRepo, *fakeApplicationRepo, *fakeNotificationRepo) {
	slots := newFakeSlotRepo()
	reservations := newFakeReservationRepo(slots)
	applications := newFakeApplicationRepo()
	notifications := newFakeNotificationRepo()

	repo := &repository.Repository{
		PracticeSlot: slots,
		Reservation:  reservations,
		Application:  applications,
		Notification: notifications,
	}
	return repo, slots, reservations, applications, notifications
}

// ---- practice slots ----

type fakeSlotRepo struct {
	mu         sync.Mutex
	slots      map[uuid.UUID]*entity.PracticeSlot
	reconciled map[uuid.UUID]entity.SlotStatus
	failFind   bool
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:      make(map[uuid.UUID]*entity.PracticeSlot),
		reconciled: make(map[uuid.UUID]entity.SlotStatus),
	}
}

func (f *fakeSlotRepo) put(slot *entity.PracticeSlot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *slot
	f.slots[slot.ID] = &clone
}

func (f *fakeSlotRepo) get(id uuid.UUID) *entity.PracticeSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if slot, ok := f.slots[id]; ok {
		clone := *slot
		return &clone
	}
	return nil
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.PracticeSlot) error {
	f.put(slot)
	return nil
}

func (f *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PracticeSlot, error) {
	if f.failFind {
		return nil, errors.New("storage down")
	}
	return f.get(id), nil
}

func (f *fakeSlotRepo) FindAll(ctx context.Context, filter repository.SlotFilter) ([]*entity.PracticeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.PracticeSlot
	for _, slot := range f.slots {
		if filter.Status != "" && slot.Status != filter.Status {
			continue
		}
		if filter.DateFrom != nil && slot.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && slot.Date.After(*filter.DateTo) {
			continue
		}
		clone := *slot
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeSlotRepo) Update(ctx context.Context, slot *entity.PracticeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[slot.ID]; !ok {
		return errors.New("slot not found")
	}
	clone := *slot
	f.slots[slot.ID] = &clone
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[id]; !ok {
		return errors.New("slot not found")
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotRepo) ReconcileStatus(ctx context.Context, id uuid.UUID, status entity.SlotStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconciled[id] = status
	if slot, ok := f.slots[id]; ok && !slot.Status.IsManual() {
		slot.Status = status
	}
	return nil
}

func (f *fakeSlotRepo) MarkDateFull(ctx context.Context, date time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var affected int64
	for _, slot := range f.slots {
		if slot.Date.Equal(date) {
			slot.Status = entity.SlotStatusFull
			affected++
		}
	}
	return affected, nil
}

// ---- reservations ----

type fakeReservationRepo struct {
	mu           sync.Mutex
	slots        *fakeSlotRepo
	reservations map[uuid.UUID]*entity.Reservation
}

func newFakeReservationRepo(slots *fakeSlotRepo) *fakeReservationRepo {
	return &fakeReservationRepo{
		slots:        slots,
		reservations: make(map[uuid.UUID]*entity.Reservation),
	}
}

func (f *fakeReservationRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range f.reservations {
		if res.UserID == userID && res.Status == entity.ReservationStatusActive {
			clone := *res
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) FindActiveByUserAndSlot(ctx context.Context, userID, slotID uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.UserID == userID && res.PracticeSlotID == slotID && res.Status == entity.ReservationStatusActive {
			clone := *res
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, res := range f.reservations {
		if res.UserID == userID && res.Status == entity.ReservationStatusActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) CreateAndIncrementSlot(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots.mu.Lock()
	defer f.slots.mu.Unlock()

	slot, ok := f.slots.slots[reservation.PracticeSlotID]
	if !ok {
		return errors.New("slot not found")
	}
	if slot.Status.IsManual() || slot.CurrentBookings >= slot.Capacity {
		return repository.ErrCapacityExceeded
	}

	slot.CurrentBookings++
	if slot.CurrentBookings >= slot.Capacity {
		slot.Status = entity.SlotStatusFull
	} else {
		slot.Status = entity.SlotStatusOpen
	}

	clone := *reservation
	f.reservations[reservation.ID] = &clone
	return nil
}

func (f *fakeReservationRepo) CancelAndDecrementSlot(ctx context.Context, reservationID, userID uuid.UUID, cancelledAt time.Time) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots.mu.Lock()
	defer f.slots.mu.Unlock()

	res, ok := f.reservations[reservationID]
	if !ok || res.UserID != userID || res.Status != entity.ReservationStatusActive {
		return nil, nil
	}

	res.Status = entity.ReservationStatusCancelled
	res.CancelledAt = &cancelledAt

	if slot, ok := f.slots.slots[res.PracticeSlotID]; ok {
		if slot.CurrentBookings > 0 {
			slot.CurrentBookings--
		}
		if slot.Status == entity.SlotStatusFull && slot.CurrentBookings < slot.Capacity {
			slot.Status = entity.SlotStatusOpen
		}
	}

	clone := *res
	return &clone, nil
}

// ---- applications ----

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[uuid.UUID]*entity.Application
	memoErr      error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[uuid.UUID]*entity.Application)}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *entity.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *app
	f.applications[app.ID] = &clone
	return nil
}

func (f *fakeApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app, ok := f.applications[id]; ok {
		clone := *app
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeApplicationRepo) FindAll(ctx context.Context) ([]*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Application
	for _, app := range f.applications {
		clone := *app
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeApplicationRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Application
	for _, app := range f.applications {
		if app.UserID == userID {
			clone := *app
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus, rejectedReason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.applications[id]
	if !ok || app.Status != entity.ApplicationStatusPending {
		return false, nil
	}
	app.Status = status
	app.RejectedReason = rejectedReason
	return true, nil
}

func (f *fakeApplicationRepo) UpdateAdminMemo(ctx context.Context, id uuid.UUID, memo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.memoErr != nil {
		return f.memoErr
	}
	app, ok := f.applications[id]
	if !ok {
		return errors.New("application not found")
	}
	app.AdminMemo = &memo
	return nil
}

// ---- notifications ----

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *notification
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			clone := *n
			matched = append(matched, &clone)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeNotificationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return errors.New("notification not found")
}

// ---- users ----

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByLineUserID(ctx context.Context, lineUserID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.LineUserID != nil && *user.LineUserID == lineUserID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

// ---- sessions ----

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *session
	f.sessions[session.TokenHash] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessions[tokenHash]; ok && session.ExpiresAt.After(time.Now()) {
		clone := *session
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessionRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, session := range f.sessions {
		if session.UserID == userID {
			delete(f.sessions, hash)
		}
	}
	return nil
}

// ---- notifier ----

type fakeNotifier struct {
	mu     sync.Mutex
	events []queue.NotificationEvent
	err    error
}

func (f *fakeNotifier) Notify(ctx context.Context, event queue.NotificationEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
