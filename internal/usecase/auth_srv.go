package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	Authenticate(ctx context.Context, token string) (*entity.Principal, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fieldErrors(errs)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fieldError("email", "Email already registered")
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := response.AuthToResponse(user, token)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, token)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token format: %w", ErrUnauthorized)
	}

	if err := s.repo.Token.Revoke(ctx, tokenUUID); err != nil {
		s.log.Warn("Failed to revoke token", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if user == nil {
		return nil, notFound("user", userID.String())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Authenticate resolves a bearer token. A nil principal with nil error means
// the token is unknown, expired or revoked.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Principal, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	return s.repo.Token.FindPrincipal(ctx, tokenUUID)
}

func (s *authService) issueToken(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	expiry := time.Duration(s.config.Auth.TokenExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	now := time.Now()
	token := &entity.AuthToken{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(expiry),
	}

	if err := s.repo.Token.Create(ctx, token); err != nil {
		s.log.Error("Failed to create token", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
