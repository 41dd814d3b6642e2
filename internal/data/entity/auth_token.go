package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuthToken struct {
	Base
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Principal is the authenticated caller resolved from a token.
type Principal struct {
	UserID  uuid.UUID
	IsStaff bool
	Token   uuid.UUID
}
