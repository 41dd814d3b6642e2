package middleware

import (
	"context"
	"net/http"
	"strings"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a bearer token. It returns nil, nil for tokens that
// are unknown, expired or revoked.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Principal, error)
}

// AuthSession requires a valid "Authorization: Bearer <token>" header and
// stores the user id, staff flag and token in the request context.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if principal == nil {
				logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), principal.UserID, principal.IsStaff)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin lets only staff users through. Must run after AuthSession.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !utils.IsStaffFromContext(r.Context()) {
				logger.Warn("Staff check: non-staff access attempt",
					zap.String("user_id", userID.String()),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// StaffWrites applies Admin to every method except GET, HEAD and OPTIONS.
func StaffWrites(logger *zap.Logger) func(http.Handler) http.Handler {
	admin := Admin(logger)
	return func(next http.Handler) http.Handler {
		guarded := admin(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				guarded.ServeHTTP(w, r)
			}
		})
	}
}
