package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/cache"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login and token lifecycle.
type AuthService struct {
	cfg         *config.Config
	accountRepo repository.AccountRepository
}

// NewAuthService creates the auth service.
func NewAuthService(cfg *config.Config, accountRepo repository.AccountRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		accountRepo: accountRepo,
	}
}

// HashPassword hashes a password with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a password against its hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims is the token payload.
type JWTClaims struct {
	AccountID    uint   `json:"account_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token for an account.
func (s *AuthService) GenerateJWT(account *models.Account) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.Role,
		TokenVersion: account.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT parses and validates a token.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// Login authenticates an account and issues a token.
func (s *AuthService) Login(email, password string) (*models.Account, string, time.Time, error) {
	account, err := s.accountRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if account == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if account.Status != constants.AccountStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	if err := s.VerifyPassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(account)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	account.LastLoginAt = &now
	if err := s.accountRepo.Update(account); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(account))

	return account, token, expiresAt, nil
}

// ChangePassword rotates an account password and bumps the token
// version so existing tokens die.
func (s *AuthService) ChangePassword(accountID uint, oldPassword, newPassword string) error {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}

	if err := s.VerifyPassword(account.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if strings.TrimSpace(newPassword) == "" {
		return ErrAccountPasswordRequired
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	account.PasswordHash = hashedPassword
	account.TokenVersion++
	if err := s.accountRepo.Update(account); err != nil {
		return err
	}
	_ = cache.DelAccountAuthState(context.Background(), account.ID)
	return nil
}

// Logout invalidates all tokens of the account.
func (s *AuthService) Logout(accountID uint) error {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrAccountNotFound
	}
	account.TokenVersion++
	if err := s.accountRepo.Update(account); err != nil {
		return err
	}
	return cache.DelAccountAuthState(context.Background(), account.ID)
}
