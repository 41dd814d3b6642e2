package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, token *entity.AuthToken) AuthResponse {
	return AuthResponse{
		UserID:    user.ID.String(),
		Email:     user.Email,
		IsStaff:   user.IsStaff,
		Token:     token.Token.String(),
		ExpiresAt: token.ExpiresAt,
	}
}
