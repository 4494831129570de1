package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/data/repository"
	"soccer-school/internal/dto/request"
	"soccer-school/internal/dto/response"
	"soccer-school/internal/queue"
	"soccer-school/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers a notification event to the member. Delivery is best
// effort; application decisions never fail on a notifier error.
type Notifier interface {
	Notify(ctx context.Context, event queue.NotificationEvent) error
}

type ApplicationService interface {
	// Member
	CreateApplication(ctx context.Context, userID uuid.UUID, req *request.CreateApplicationRequest) (*response.ApplicationResponse, error)
	GetUserApplications(ctx context.Context, userID uuid.UUID) ([]response.ApplicationResponse, error)
	GetApplication(ctx context.Context, userID uuid.UUID, isAdmin bool, applicationID string) (*response.ApplicationResponse, error)

	// Admin
	ListApplications(ctx context.Context) ([]response.AdminApplicationResponse, error)
	ApproveApplication(ctx context.Context, applicationID string) (*response.AdminApplicationResponse, error)
	RejectApplication(ctx context.Context, applicationID string, req *request.RejectApplicationRequest) (*response.AdminApplicationResponse, error)
	UpdateAdminMemo(ctx context.Context, applicationID string, req *request.AdminMemoRequest) (*response.AdminApplicationResponse, error)
}

type applicationService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewApplicationService(repo *repository.Repository, notifier Notifier, log *zap.Logger) ApplicationService {
	return &applicationService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "application")),
	}
}

func (s *applicationService) CreateApplication(ctx context.Context, userID uuid.UUID, req *request.CreateApplicationRequest) (*response.ApplicationResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create application validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	// 2. Persist as pending
	now := time.Now()
	app := &entity.Application{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userID,
		Name:       strings.TrimSpace(req.Name),
		NameKana:   strings.TrimSpace(req.NameKana),
		Grade:      req.Grade,
		Email:      req.Email,
		Phone:      req.Phone,
		ParentName: req.ParentName,
		Notes:      req.Notes,
		Status:     entity.ApplicationStatusPending,
	}

	if err := s.repo.Application.Create(ctx, app); err != nil {
		s.log.Error("Failed to create application", zap.Error(err))
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.log.Info("Application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("user_id", userID.String()))

	resp := response.ApplicationToResponse(app)
	return &resp, nil
}

func (s *applicationService) GetUserApplications(ctx context.Context, userID uuid.UUID) ([]response.ApplicationResponse, error) {
	apps, err := s.repo.Application.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list user applications", zap.Error(err))
		return nil, fmt.Errorf("list applications: %w", err)
	}

	out := make([]response.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, response.ApplicationToResponse(app))
	}

	return out, nil
}

func (s *applicationService) GetApplication(ctx context.Context, userID uuid.UUID, isAdmin bool, applicationID string) (*response.ApplicationResponse, error) {
	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	// Members can only read their own applications; staff can read any
	if app.UserID != userID && !isAdmin {
		return nil, ErrApplicationNotFound
	}

	resp := response.ApplicationToResponse(app)
	return &resp, nil
}

func (s *applicationService) ListApplications(ctx context.Context) ([]response.AdminApplicationResponse, error) {
	apps, err := s.repo.Application.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list applications", zap.Error(err))
		return nil, fmt.Errorf("list applications: %w", err)
	}

	out := make([]response.AdminApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, response.ApplicationToAdminResponse(app))
	}

	return out, nil
}

func (s *applicationService) ApproveApplication(ctx context.Context, applicationID string) (*response.AdminApplicationResponse, error) {
	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.Status != entity.ApplicationStatusPending {
		return nil, ErrAlreadyProcessed
	}

	// Conditional update closes the race with a concurrent decision
	updated, err := s.repo.Application.UpdateStatusIfPending(ctx, app.ID, entity.ApplicationStatusApproved, nil)
	if err != nil {
		s.log.Error("Failed to approve application",
			zap.String("application_id", applicationID), zap.Error(err))
		return nil, fmt.Errorf("approve application %s: %w", applicationID, err)
	}
	if !updated {
		return nil, ErrAlreadyProcessed
	}

	app.Status = entity.ApplicationStatusApproved
	app.RejectedReason = nil

	s.log.Info("Application approved", zap.String("application_id", app.ID.String()))

	s.notifyDecision(ctx, app,
		"入会申込が承認されました",
		fmt.Sprintf("%sさんの入会申込が承認されました。練習予約が可能になりました。", app.Name))

	resp := response.ApplicationToAdminResponse(app)
	return &resp, nil
}

func (s *applicationService) RejectApplication(ctx context.Context, applicationID string, req *request.RejectApplicationRequest) (*response.AdminApplicationResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrMissingReason
	}

	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if app.Status != entity.ApplicationStatusPending {
		return nil, ErrAlreadyProcessed
	}

	updated, err := s.repo.Application.UpdateStatusIfPending(ctx, app.ID, entity.ApplicationStatusRejected, &reason)
	if err != nil {
		s.log.Error("Failed to reject application",
			zap.String("application_id", applicationID), zap.Error(err))
		return nil, fmt.Errorf("reject application %s: %w", applicationID, err)
	}
	if !updated {
		return nil, ErrAlreadyProcessed
	}

	app.Status = entity.ApplicationStatusRejected
	app.RejectedReason = &reason

	s.log.Info("Application rejected",
		zap.String("application_id", app.ID.String()),
		zap.String("reason", reason))

	s.notifyDecision(ctx, app,
		"入会申込の結果について",
		fmt.Sprintf("%sさんの入会申込は承認されませんでした。理由: %s", app.Name, reason))

	resp := response.ApplicationToAdminResponse(app)
	return &resp, nil
}

func (s *applicationService) UpdateAdminMemo(ctx context.Context, applicationID string, req *request.AdminMemoRequest) (*response.AdminApplicationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Application.UpdateAdminMemo(ctx, app.ID, req.Memo); err != nil {
		s.log.Error("Failed to update admin memo",
			zap.String("application_id", applicationID), zap.Error(err))
		return nil, fmt.Errorf("update memo for application %s: %w", applicationID, err)
	}

	memo := req.Memo
	app.AdminMemo = &memo

	resp := response.ApplicationToAdminResponse(app)
	return &resp, nil
}

func (s *applicationService) findApplication(ctx context.Context, applicationID string) (*entity.Application, error) {
	id, err := uuid.Parse(applicationID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %s", ErrApplicationNotFound, applicationID)
	}

	app, err := s.repo.Application.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load application",
			zap.String("application_id", applicationID), zap.Error(err))
		return nil, fmt.Errorf("find application %s: %w", applicationID, err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}

	return app, nil
}

// notifyDecision tells the applicant about the decision. A failed publish
// is logged and otherwise ignored.
func (s *applicationService) notifyDecision(ctx context.Context, app *entity.Application, title, content string) {
	if s.notifier == nil {
		return
	}

	event := queue.NewApplicationStatusEvent(app.UserID, title, content)
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.log.Warn("Failed to send decision notification",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}
}
