package mocks

import (
	"context"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
	repository.UserRepository
}

func (m *MockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *MockUserRepo) SetStaff(ctx context.Context, id uuid.UUID, isStaff bool) error {
	args := m.Called(ctx, id, isStaff)
	return args.Error(0)
}

type MockTokenRepo struct {
	mock.Mock
	repository.TokenRepository
}

func (m *MockTokenRepo) Create(ctx context.Context, token *entity.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepo) FindPrincipal(ctx context.Context, token uuid.UUID) (*entity.Principal, error) {
	args := m.Called(ctx, token)
	principal, _ := args.Get(0).(*entity.Principal)
	return principal, args.Error(1)
}

// MockAuthService only resolves tokens; the remaining methods panic if called.
type MockAuthService struct {
	mock.Mock
	usecase.AuthService
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*entity.Principal, error) {
	args := m.Called(ctx, token)
	principal, _ := args.Get(0).(*entity.Principal)
	return principal, args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*response.UserResponse)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*response.AuthResponse)
	return resp, args.Error(1)
}
