package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, repository.AccountRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_svc_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-service-test-secret-0123456789abcdef"
	cfg.JWT.ExpireHours = 24

	repo := repository.NewAccountRepository(db)
	return NewAuthService(cfg, repo), repo
}

func createAuthTestAccount(t *testing.T, svc *AuthService, repo repository.AccountRepository, email, password, status string) *models.Account {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	account := &models.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleProducer,
		Status:       status,
	}
	if err := repo.Create(account); err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	return account
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	createAuthTestAccount(t, svc, repo, "login@portal.local", "correct-horse", constants.AccountStatusActive)

	account, token, expiresAt, err := svc.Login("  Login@Portal.LOCAL  ", "correct-horse")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("expected a future-dated token, got %q until %v", token, expiresAt)
	}
	if account.LastLoginAt == nil {
		t.Fatalf("expected LastLoginAt stamped")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if claims.AccountID != account.ID || claims.Email != "login@portal.local" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	createAuthTestAccount(t, svc, repo, "login@portal.local", "correct-horse", constants.AccountStatusActive)

	if _, _, _, err := svc.Login("login@portal.local", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@portal.local", "whatever"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	createAuthTestAccount(t, svc, repo, "off@portal.local", "correct-horse", constants.AccountStatusDisabled)

	if _, _, _, err := svc.Login("off@portal.local", "correct-horse"); err != ErrAccountDisabled {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	account := createAuthTestAccount(t, svc, repo, "rotate@portal.local", "old-pass", constants.AccountStatusActive)

	if err := svc.ChangePassword(account.ID, "wrong", "new-pass"); err != ErrInvalidPassword {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := svc.ChangePassword(account.ID, "old-pass", "  "); err != ErrAccountPasswordRequired {
		t.Fatalf("expected ErrAccountPasswordRequired, got %v", err)
	}
	if err := svc.ChangePassword(account.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("ChangePassword error: %v", err)
	}

	updated, err := repo.GetByID(account.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if updated.TokenVersion != account.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
	if _, _, _, err := svc.Login("rotate@portal.local", "new-pass"); err != nil {
		t.Fatalf("login with rotated password failed: %v", err)
	}
}

func TestLogoutInvalidatesTokens(t *testing.T) {
	svc, repo := setupAuthServiceTest(t)
	account := createAuthTestAccount(t, svc, repo, "bye@portal.local", "correct-horse", constants.AccountStatusActive)

	if err := svc.Logout(account.ID); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	updated, err := repo.GetByID(account.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if updated.TokenVersion != account.TokenVersion+1 {
		t.Fatalf("expected token version bump, got %d", updated.TokenVersion)
	}
}
