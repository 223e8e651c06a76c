package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
)

// UserRepository handles database operations for portal users
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database}
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := psql.Select("id", "username", "password", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"username": username})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("user not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// CreateIfAbsent inserts user unless the username already exists
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	role := user.Role
	if role == "" {
		role = models.RoleAdmin
	}

	query := psql.Insert("users").
		Columns("username", "password", "role").
		Values(user.Username, user.Password, role).
		Suffix("ON CONFLICT (username) DO NOTHING RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error creating user: %w", err)
	}

	user.Role = role
	return true, nil
}
