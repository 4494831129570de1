package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"soccer-school/internal/data/entity"
	"soccer-school/internal/data/repository"
	"soccer-school/internal/dto/request"
	"soccer-school/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	testChannelID     = "1234567890"
	testChannelSecret = "test-channel-secret"
)

func testAuthService() (AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	repo := &repository.Repository{
		User:    users,
		Session: sessions,
	}
	config := &utils.Config{
		JWT: utils.JWTConfig{
			Secret:           "unit-test-secret",
			AccessTTLMinutes: 15,
			RefreshTTLDays:   30,
		},
		Line: utils.LineConfig{
			ChannelID:     testChannelID,
			ChannelSecret: testChannelSecret,
		},
	}
	return NewAuthService(repo, config, testLogger()), users, sessions
}

func signLineIDToken(t *testing.T, sub, name, secret string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":  "https://access.line.me",
		"aud":  testChannelID,
		"sub":  sub,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign id token: %v", err)
	}
	return signed
}

func TestLineLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("first login registers a member", func(t *testing.T) {
		svc, users, _ := testAuthService()

		idToken := signLineIDToken(t, "U1234", "山田 花子", testChannelSecret)
		resp, err := svc.LineLogin(ctx, &request.LineLoginRequest{IDToken: idToken})
		if err != nil {
			t.Fatalf("LineLogin: %v", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			t.Error("tokens not issued")
		}
		if resp.User.Role != string(entity.RoleMember) {
			t.Errorf("role = %q, want member", resp.User.Role)
		}

		user, err := users.FindByLineUserID(ctx, "U1234")
		if err != nil {
			t.Fatal(err)
		}
		if user == nil {
			t.Fatal("user not created")
		}
		if user.Name != "山田 花子" {
			t.Errorf("name = %q", user.Name)
		}
	})

	t.Run("second login reuses the account", func(t *testing.T) {
		svc, users, _ := testAuthService()
		idToken := signLineIDToken(t, "U1234", "山田 花子", testChannelSecret)

		first, err := svc.LineLogin(ctx, &request.LineLoginRequest{IDToken: idToken})
		if err != nil {
			t.Fatal(err)
		}
		second, err := svc.LineLogin(ctx, &request.LineLoginRequest{IDToken: idToken})
		if err != nil {
			t.Fatal(err)
		}
		if first.User.ID != second.User.ID {
			t.Errorf("user ids differ: %s vs %s", first.User.ID, second.User.ID)
		}
		if len(users.users) != 1 {
			t.Errorf("users = %d, want 1", len(users.users))
		}
	})

	t.Run("forged token is rejected", func(t *testing.T) {
		svc, _, _ := testAuthService()

		idToken := signLineIDToken(t, "U1234", "山田 花子", "wrong-secret")
		_, err := svc.LineLogin(ctx, &request.LineLoginRequest{IDToken: idToken})
		if !errors.Is(err, ErrInvalidIDToken) {
			t.Errorf("err = %v, want ErrInvalidIDToken", err)
		}
	})
}

func TestStaffLogin(t *testing.T) {
	ctx := context.Background()

	seedStaff := func(t *testing.T, users *fakeUserRepo, email, password string) *entity.User {
		t.Helper()
		hash, err := utils.HashPassword(password)
		if err != nil {
			t.Fatal(err)
		}
		now := time.Now()
		user := &entity.User{
			Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:         "コーチ",
			Email:        &email,
			PasswordHash: &hash,
			Role:         entity.RoleAdmin,
		}
		if err := users.Create(ctx, user); err != nil {
			t.Fatal(err)
		}
		return user
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, users, _ := testAuthService()
		seedStaff(t, users, "coach@example.com", "secret-pass")

		resp, err := svc.Login(ctx, &request.LoginRequest{Email: "coach@example.com", Password: "secret-pass"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.User.Role != string(entity.RoleAdmin) {
			t.Errorf("role = %q, want admin", resp.User.Role)
		}

		// The issued access token carries the admin role
		claims, err := utils.ParseAccessToken(resp.AccessToken, "unit-test-secret")
		if err != nil {
			t.Fatalf("ParseAccessToken: %v", err)
		}
		if claims.Role != string(entity.RoleAdmin) {
			t.Errorf("claims role = %q, want admin", claims.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _ := testAuthService()
		seedStaff(t, users, "coach@example.com", "secret-pass")

		_, err := svc.Login(ctx, &request.LoginRequest{Email: "coach@example.com", Password: "not-it"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := testAuthService()

		_, err := svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, _, _ := testAuthService()
		idToken := signLineIDToken(t, "U1234", "山田 花子", testChannelSecret)

		login, err := svc.LineLogin(ctx, &request.LineLoginRequest{IDToken: idToken})
		if err != nil {
			t.Fatal(err)
		}

		refreshed, err := svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
		if err != nil {
			t.Fatalf("Refresh: %v", err)
		}
		if refreshed.RefreshToken == login.RefreshToken {
			t.Error("refresh token was not rotated")
		}

		// The used token is burned
		_, err = svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken})
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("replayed refresh err = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _, _ := testAuthService()

		_, err := svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: "bogus"})
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("err = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, sessions := testAuthService()
	idToken := signLineIDToken(t, "U1234", "山田 花子", testChannelSecret)

	login, err := svc.LineLogin(ctx, &request.LineLoginRequest{IDToken: idToken})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions.sessions))
	}

	if err := svc.Logout(ctx, &request.LogoutRequest{RefreshToken: login.RefreshToken}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions.sessions))
	}

	if _, err := svc.Refresh(ctx, &request.RefreshRequest{RefreshToken: login.RefreshToken}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("refresh after logout err = %v, want ErrSessionNotFound", err)
	}
}
