package service

import (
	"strings"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/authz"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AccountService provisions and manages portal accounts.
type AccountService struct {
	accountRepo repository.AccountRepository
	authzSvc    *authz.Service
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo repository.AccountRepository, authzSvc *authz.Service) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		authzSvc:    authzSvc,
	}
}

// ProvisionInput is the account creation input. Metadata is stored
// as-is; a role key inside it selects the portal role.
type ProvisionInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	Metadata models.JSON
}

// Provision creates an account with the email pre-confirmed, the way
// an administrator-provisioned login works.
func (s *AccountService) Provision(input ProvisionInput) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrAccountEmailRequired
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, ErrAccountPasswordRequired
	}

	existing, err := s.accountRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := normalizeAccountRole(input.Role, input.Metadata)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = metadataString(input.Metadata, "name")
	}

	now := time.Now()
	account := &models.Account{
		Email:            email,
		PasswordHash:     string(hash),
		Name:             name,
		Role:             role,
		Status:           constants.AccountStatusActive,
		UserMetadata:     input.Metadata,
		EmailConfirmedAt: &now,
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}

	if s.authzSvc != nil {
		if err := s.authzSvc.SetAccountRoles(account.ID, []string{role}); err != nil {
			logger.Warnw("assign_account_role_failed", "account_id", account.ID, "role", role, "error", err)
		}
	}

	return account, nil
}

// GetAccount fetches an account.
func (s *AccountService) GetAccount(id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// ListAccounts returns a filtered account page.
func (s *AccountService) ListAccounts(filter repository.AccountListFilter) ([]models.Account, int64, error) {
	return s.accountRepo.List(filter)
}

// SetStatus enables or disables an account.
func (s *AccountService) SetStatus(id uint, status string) (*models.Account, error) {
	if status != constants.AccountStatusActive && status != constants.AccountStatusDisabled {
		return nil, ErrNotFound
	}
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	account.Status = status
	account.TokenVersion++
	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func normalizeAccountRole(role string, metadata models.JSON) string {
	normalized := strings.ToLower(strings.TrimSpace(role))
	if normalized == "" {
		normalized = strings.ToLower(metadataString(metadata, "role"))
	}
	switch normalized {
	case constants.RoleProducer, constants.RoleFinance, constants.RoleReadonly:
		return normalized
	default:
		return constants.RoleProducer
	}
}

func metadataString(metadata models.JSON, key string) string {
	if metadata == nil {
		return ""
	}
	if v, ok := metadata[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
