package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	SetStaff(ctx context.Context, id uuid.UUID, isStaff bool) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// Create inserts a new user; a taken email yields ErrDuplicate
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.IsStaff,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, is_staff, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := ur.scanOne(ur.db.QueryRow(ctx, query, id))
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, is_staff, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	user, err := ur.scanOne(ur.db.QueryRow(ctx, query, email))
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) SetStaff(ctx context.Context, id uuid.UUID, isStaff bool) error {
	query := `UPDATE users SET is_staff = $2, updated_at = NOW() WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id, isStaff)
	if err != nil {
		ur.log.Error("Failed to update staff flag",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("set staff %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id.String(), ErrNotFound)
	}

	ur.log.Info("User staff flag updated",
		zap.String("user_id", id.String()),
		zap.Bool("is_staff", isStaff),
	)
	return nil
}

// scanOne returns nil, nil when the row does not exist
func (ur *userRepository) scanOne(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}
