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

type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	FindPrincipal(ctx context.Context, token uuid.UUID) (*entity.Principal, error)
	Revoke(ctx context.Context, token uuid.UUID) error
	CleanExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "auth_token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create auth token: %w", err)
	}

	return nil
}

// FindPrincipal resolves a live token to its user. Revoked or expired tokens yield nil, nil.
func (r *tokenRepository) FindPrincipal(ctx context.Context, token uuid.UUID) (*entity.Principal, error) {
	query := `
		SELECT u.id, u.is_staff, t.token
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token = $1
		  AND t.revoked_at IS NULL
		  AND t.expires_at > NOW()
	`

	var p entity.Principal
	err := r.db.QueryRow(ctx, query, token).Scan(&p.UserID, &p.IsStaff, &p.Token)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auth token", zap.Error(err))
		return nil, fmt.Errorf("find auth token: %w", err)
	}

	return &p, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	query := `
		UPDATE auth_tokens
		SET revoked_at = NOW(), updated_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke auth token", zap.Error(err))
		return fmt.Errorf("revoke auth token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auth token not found or already revoked")
	}

	return nil
}

func (r *tokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM auth_tokens
		WHERE expires_at < NOW() - INTERVAL '7 days'
		   OR revoked_at < NOW() - INTERVAL '7 days'
	`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to clean expired auth tokens", zap.Error(err))
		return 0, fmt.Errorf("clean auth tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
