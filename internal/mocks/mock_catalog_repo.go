package mocks

import (
	"context"

	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMovieRepo struct {
	mock.Mock
	repository.MovieRepository
}

func (m *MockMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entity.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error {
	args := m.Called(ctx, movie, genreIDs, actorIDs)
	return args.Error(0)
}

func (m *MockMovieRepo) FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	args := m.Called(ctx, filter, limit, offset)
	movies, _ := args.Get(0).([]*entity.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieRepo) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockHallRepo struct {
	mock.Mock
	repository.HallRepository
}

func (m *MockHallRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CinemaHall, error) {
	args := m.Called(ctx, id)
	hall, _ := args.Get(0).(*entity.CinemaHall)
	return hall, args.Error(1)
}

func (m *MockHallRepo) Create(ctx context.Context, hall *entity.CinemaHall) error {
	args := m.Called(ctx, hall)
	return args.Error(0)
}

type MockGenreRepo struct {
	mock.Mock
	repository.GenreRepository
}

func (m *MockGenreRepo) Create(ctx context.Context, genre *entity.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *MockGenreRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error) {
	args := m.Called(ctx, ids)
	genres, _ := args.Get(0).([]*entity.Genre)
	return genres, args.Error(1)
}

func (m *MockGenreRepo) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Genre, error) {
	args := m.Called(ctx, movieIDs)
	genres, _ := args.Get(0).(map[uuid.UUID][]entity.Genre)
	return genres, args.Error(1)
}

type MockActorRepo struct {
	mock.Mock
	repository.ActorRepository
}

func (m *MockActorRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Actor, error) {
	args := m.Called(ctx, ids)
	actors, _ := args.Get(0).([]*entity.Actor)
	return actors, args.Error(1)
}

func (m *MockActorRepo) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Actor, error) {
	args := m.Called(ctx, movieIDs)
	actors, _ := args.Get(0).(map[uuid.UUID][]entity.Actor)
	return actors, args.Error(1)
}
