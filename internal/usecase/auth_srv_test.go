package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/mocks"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(users *mocks.MockUserRepo, tokens *mocks.MockTokenRepo) usecase.AuthService {
	config := &utils.Config{Auth: utils.AuthConfig{TokenExpiryHours: 2}}
	return usecase.NewAuthService(&repository.Repository{User: users, Token: tokens}, config, zap.NewNop())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		req        request.RegisterRequest
		createErr  error
		wantField  string
		wantCreate bool
	}{
		{
			name:       "should register a customer and issue a token",
			req:        request.RegisterRequest{Email: " New@Cinema.Test ", Password: "correct-horse"},
			wantCreate: true,
		},
		{
			name:      "should reject a short password",
			req:       request.RegisterRequest{Email: "new@cinema.test", Password: "short"},
			wantField: "password",
		},
		{
			name:       "should reject a taken email",
			req:        request.RegisterRequest{Email: "taken@cinema.test", Password: "correct-horse"},
			createErr:  repository.ErrDuplicate,
			wantField:  "email",
			wantCreate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepo)
			tokens := new(mocks.MockTokenRepo)
			users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(tt.createErr).Maybe()
			tokens.On("Create", mock.Anything, mock.AnythingOfType("*entity.AuthToken")).Return(nil).Maybe()

			req := tt.req
			resp, err := newAuthService(users, tokens).Register(context.Background(), &req)

			if tt.wantCreate {
				users.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
					return !u.IsStaff && u.PasswordHash != req.Password
				}))
			} else {
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}

			if tt.wantField != "" {
				var ferr *usecase.FieldError
				require.ErrorAs(t, err, &ferr)
				assert.Contains(t, ferr.Fields, tt.wantField)
				tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "new@cinema.test", resp.Email)
			assert.False(t, resp.IsStaff)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "staff@cinema.test", PasswordHash: hash, IsStaff: true}

	tests := []struct {
		name     string
		password string
		found    *entity.User
		wantErr  error
	}{
		{name: "should log in with the right password", password: "correct-horse", found: user},
		{name: "should reject a wrong password", password: "wrong-horse", found: user, wantErr: usecase.ErrUnauthorized},
		{name: "should reject an unknown email", password: "correct-horse", wantErr: usecase.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepo)
			tokens := new(mocks.MockTokenRepo)
			users.On("FindByEmail", mock.Anything, "staff@cinema.test").Return(tt.found, nil)
			tokens.On("Create", mock.Anything, mock.AnythingOfType("*entity.AuthToken")).Return(nil).Maybe()

			resp, err := newAuthService(users, tokens).Login(context.Background(), &request.LoginRequest{
				Email:    "staff@cinema.test",
				Password: tt.password,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.True(t, resp.IsStaff)
			assert.Equal(t, user.ID.String(), resp.UserID)
			assert.True(t, resp.ExpiresAt.After(user.CreatedAt))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	token := uuid.New()
	principal := &entity.Principal{UserID: uuid.New(), Token: token}

	users := new(mocks.MockUserRepo)
	tokens := new(mocks.MockTokenRepo)
	tokens.On("FindPrincipal", mock.Anything, token).Return(principal, nil)
	service := newAuthService(users, tokens)

	got, err := service.Authenticate(context.Background(), token.String())
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	got, err = service.Authenticate(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, got)
	tokens.AssertNumberOfCalls(t, "FindPrincipal", 1)
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	token := uuid.New()
	tokens := new(mocks.MockTokenRepo)
	tokens.On("FindPrincipal", mock.Anything, token).Return(nil, errors.New("connection reset"))

	got, err := newAuthService(new(mocks.MockUserRepo), tokens).Authenticate(context.Background(), token.String())

	assert.Error(t, err)
	assert.Nil(t, got)
}
