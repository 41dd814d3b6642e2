package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-api/internal/data/repository"

	"go.uber.org/zap"
)

// PromoteStaff grants staff rights to the user with the given email.
// Staff accounts are never created through the public API.
func PromoteStaff(ctx context.Context, users repository.UserRepository, email string, log *zap.Logger) error {
	user, err := users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user with email %q", email)
	}

	if err := users.SetStaff(ctx, user.ID, true); err != nil {
		return err
	}

	log.Info("User promoted to staff",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return nil
}

// CleanTokens deletes expired and revoked auth tokens every interval until ctx ends.
func CleanTokens(ctx context.Context, tokens repository.TokenRepository, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.CleanExpired(ctx)
			if err != nil {
				log.Warn("Token cleanup failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("Expired tokens removed", zap.Int64("count", n))
			}
		}
	}
}
