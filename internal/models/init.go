package models

import (
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the bootstrap administrator account.
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&Account{}).Where("is_super = ?", true).Count(&count)

	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@portalunk.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := Account{
		Email:            email,
		PasswordHash:     string(hash),
		Name:             "Administrator",
		Role:             "finance",
		Status:           "active",
		IsSuper:          true,
		EmailConfirmedAt: &now,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}

	return nil
}
