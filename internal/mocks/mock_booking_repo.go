package mocks

import (
	"context"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMovieSessionRepo struct {
	mock.Mock
	repository.MovieSessionRepository
}

func (m *MockMovieSessionRepo) Create(ctx context.Context, session *entity.MovieSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockMovieSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSessionView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*entity.MovieSessionView)
	return view, args.Error(1)
}

func (m *MockMovieSessionRepo) FindAll(ctx context.Context, filter entity.MovieSessionFilter, limit, offset int) ([]*entity.MovieSessionView, error) {
	args := m.Called(ctx, filter, limit, offset)
	views, _ := args.Get(0).([]*entity.MovieSessionView)
	return views, args.Error(1)
}

func (m *MockMovieSessionRepo) CountAll(ctx context.Context, filter entity.MovieSessionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieSessionRepo) Update(ctx context.Context, session *entity.MovieSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockMovieSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieSessionRepo) FindHalls(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]booking.Hall, error) {
	args := m.Called(ctx, ids)
	halls, _ := args.Get(0).(map[uuid.UUID]booking.Hall)
	return halls, args.Error(1)
}

type MockTicketRepo struct {
	mock.Mock
	repository.TicketRepository
}

func (m *MockTicketRepo) FindTakenPlaces(ctx context.Context, sessionIDs []uuid.UUID) (map[booking.Place]struct{}, error) {
	args := m.Called(ctx, sessionIDs)
	taken, _ := args.Get(0).(map[booking.Place]struct{})
	return taken, args.Error(1)
}

func (m *MockTicketRepo) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entity.Ticket, error) {
	args := m.Called(ctx, sessionID)
	tickets, _ := args.Get(0).([]entity.Ticket)
	return tickets, args.Error(1)
}

func (m *MockTicketRepo) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]entity.Ticket, error) {
	args := m.Called(ctx, orderIDs)
	tickets, _ := args.Get(0).(map[uuid.UUID][]entity.Ticket)
	return tickets, args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
	repository.OrderRepository
}

func (m *MockOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	orders, _ := args.Get(0).([]*entity.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
