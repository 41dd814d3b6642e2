package mocks

import (
	"context"

	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/internal/events"
	"cinema-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
	usecase.OrderService
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	args := m.Called(ctx, userID, req)
	order, _ := args.Get(0).(*response.OrderResponse)
	return order, args.Error(1)
}

func (m *MockOrderService) GetOrders(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	args := m.Called(ctx, userID, req)
	orders, _ := args.Get(0).(*response.PaginatedResponse[response.OrderResponse])
	return orders, args.Error(1)
}

type MockMovieSessionService struct {
	mock.Mock
	usecase.MovieSessionService
}

func (m *MockMovieSessionService) GetMovieSessions(ctx context.Context, req *request.MovieSessionFilterRequest) (*response.PaginatedResponse[response.MovieSessionListResponse], error) {
	args := m.Called(ctx, req)
	sessions, _ := args.Get(0).(*response.PaginatedResponse[response.MovieSessionListResponse])
	return sessions, args.Error(1)
}

func (m *MockMovieSessionService) DeleteMovieSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, event events.OrderCreated) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}
