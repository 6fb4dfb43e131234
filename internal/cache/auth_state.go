package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AccountAuthState is the server-side auth snapshot kept in Redis so
// the auth middleware does not hit the database on every request.
// TokenInvalidBefore is a Unix-second timestamp, 0 when unset.
type AccountAuthState struct {
	AccountID          uint   `json:"account_id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super"`
	UpdatedAt          int64  `json:"updated_at"`
}

func accountAuthStateKey(accountID uint) string {
	return fmt.Sprintf("auth:account:%d", accountID)
}

// BuildAccountAuthState builds a snapshot from the account model.
func BuildAccountAuthState(account *models.Account) *AccountAuthState {
	if account == nil {
		return nil
	}
	state := &AccountAuthState{
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.Role,
		Status:       account.Status,
		TokenVersion: account.TokenVersion,
		IsSuper:      account.IsSuper,
		UpdatedAt:    time.Now().Unix(),
	}
	if account.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = account.TokenInvalidBefore.Unix()
	}
	return state
}

// GetAccountAuthState reads the cached snapshot.
func GetAccountAuthState(ctx context.Context, accountID uint) (*AccountAuthState, bool, error) {
	if accountID == 0 {
		return nil, false, nil
	}
	var state AccountAuthState
	hit, err := GetJSON(ctx, accountAuthStateKey(accountID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAccountAuthState writes the snapshot.
func SetAccountAuthState(ctx context.Context, state *AccountAuthState) error {
	if state == nil || state.AccountID == 0 {
		return nil
	}
	return SetJSON(ctx, accountAuthStateKey(state.AccountID), state, authStateCacheTTL)
}

// DelAccountAuthState drops the snapshot (logout, role change).
func DelAccountAuthState(ctx context.Context, accountID uint) error {
	if accountID == 0 {
		return nil
	}
	return Del(ctx, accountAuthStateKey(accountID))
}
