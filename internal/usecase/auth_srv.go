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

type AuthService interface {
	// LineLogin verifies a LINE ID token and signs the member in,
	// creating the account on first login.
	LineLogin(ctx context.Context, req *request.LineLoginRequest) (*response.AuthResponse, error)

	// Login authenticates a staff account with email and password.
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)

	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, req *request.LogoutRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) LineLogin(ctx context.Context, req *request.LineLoginRequest) (*response.AuthResponse, error) {
	// 1. Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("LINE login validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	// 2. Verify the ID token against the channel credentials
	claims, err := utils.VerifyLineIDToken(req.IDToken, s.config.Line.ChannelID, s.config.Line.ChannelSecret)
	if err != nil {
		s.log.Warn("LINE ID token rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	// 3. Find or create the user
	user, err := s.repo.User.FindByLineUserID(ctx, claims.Subject)
	if err != nil {
		s.log.Error("Failed to look up LINE user", zap.Error(err))
		return nil, fmt.Errorf("find user by line id: %w", err)
	}

	if user == nil {
		now := time.Now()
		lineID := claims.Subject
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			LineUserID: &lineID,
			Name:       claims.Name,
			Role:       entity.RoleMember,
		}
		if claims.Email != "" {
			email := claims.Email
			user.Email = &email
		}
		if claims.Picture != "" {
			picture := claims.Picture
			user.ProfileImage = &picture
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user from LINE login", zap.Error(err))
			return nil, fmt.Errorf("create user: %w", err)
		}

		s.log.Info("Registered new member via LINE",
			zap.String("user_id", user.ID.String()))
	} else if claims.Name != "" && (user.Name != claims.Name || claims.Picture != "") {
		// Keep profile in sync with LINE
		user.Name = claims.Name
		if claims.Picture != "" {
			picture := claims.Picture
			user.ProfileImage = &picture
		}
		if err := s.repo.User.Update(ctx, user); err != nil {
			s.log.Warn("Failed to sync LINE profile", zap.Error(err))
		}
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to look up user by email", zap.Error(err))
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if user == nil || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Password mismatch", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	tokenHash := utils.HashRefreshToken(req.RefreshToken)

	session, err := s.repo.Session.FindValidByTokenHash(ctx, tokenHash)
	if err != nil {
		s.log.Error("Failed to look up session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", session.UserID, err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	// Rotate: the used refresh token is burned before a new one is issued
	if err := s.repo.Session.DeleteByTokenHash(ctx, tokenHash); err != nil {
		s.log.Error("Failed to delete used session", zap.Error(err))
		return nil, fmt.Errorf("rotate session: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, req *request.LogoutRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return NewValidationError(errs)
	}

	tokenHash := utils.HashRefreshToken(req.RefreshToken)

	if err := s.repo.Session.DeleteByTokenHash(ctx, tokenHash); err != nil {
		s.log.Error("Failed to delete session on logout", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*response.AuthResponse, error) {
	accessTTL := time.Duration(s.config.JWT.AccessTTLMinutes) * time.Minute

	accessToken, err := utils.NewAccessToken(user.ID, string(user.Role), s.config.JWT.Secret, accessTTL)
	if err != nil {
		s.log.Error("Failed to sign access token", zap.Error(err))
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshRaw, err := utils.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refreshRaw),
		ExpiresAt: time.Now().AddDate(0, 0, s.config.JWT.RefreshTTLDays),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to store session", zap.Error(err))
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &response.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshRaw,
		ExpiresIn:    int(accessTTL.Seconds()),
		User:         response.UserToResponse(user),
	}, nil
}
