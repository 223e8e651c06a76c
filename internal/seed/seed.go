// Package seed creates the initial coordinator account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/auth"
)

// ErrAdminNotConfigured is returned when no admin credentials were supplied.
var ErrAdminNotConfigured = errors.New("admin username and password must be configured")

// Admin creates the admin user if no user with that username exists yet. It
// reports whether a user was created; an existing account is left untouched.
func Admin(ctx context.Context, userRepo repositories.IUserRepository, username, password string, lgr zerolog.Logger) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, ErrAdminNotConfigured
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := userRepo.CreateIfAbsent(ctx, &models.User{
		Username: username,
		Password: hash,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	if created {
		lgr.Info().Str("username", username).Msg("Admin user created")
	} else {
		lgr.Info().Str("username", username).Msg("Admin user already exists, skipping")
	}
	return created, nil
}
