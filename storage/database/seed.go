package database

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/user"
)

// Default administrator credentials; meant to be changed right after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@jltacademy.com"
	DefaultAdminPassword = "admin123"
)

// SeedDefaultAdmin creates the default administrator account if it is absent.
func SeedDefaultAdmin(ctx context.Context, repo user.Repository) error {
	_, err := repo.GetUserByUsernameOrEmail(ctx, DefaultAdminUsername)
	if err == nil {
		return nil
	}
	if err != user.ErrNotFound {
		return errors.Wrap(err, "checking default admin")
	}

	now := time.Now().UTC()
	admin := user.User{
		Username:  DefaultAdminUsername,
		Email:     DefaultAdminEmail,
		Role:      user.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = admin.SetPassword(DefaultAdminPassword); err != nil {
		return errors.Wrap(err, "hashing default admin password")
	}
	if _, err = repo.CreateUser(ctx, admin); err != nil {
		return errors.Wrap(err, "creating default admin")
	}
	return nil
}
