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

// CatalogService covers the create+list resources: genres, actors and cinema halls.
type CatalogService interface {
	GetGenres(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)

	GetActors(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ActorResponse], error)
	CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error)

	GetCinemaHalls(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CinemaHallResponse], error)
	CreateCinemaHall(ctx context.Context, req *request.CinemaHallRequest) (*response.CinemaHallResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetGenres(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.repo.Genre.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}

	total, err := s.repo.Genre.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count genres: %w", err)
	}

	data := make([]response.GenreResponse, 0, len(genres))
	for _, g := range genres {
		data = append(data, response.GenreToResponse(g))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *catalogService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	now := time.Now()
	genre := &entity.Genre{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: req.Name,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fieldError("name", "Genre with this name already exists")
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created",
		zap.String("genre_id", genre.ID.String()),
		zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *catalogService) GetActors(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.ActorResponse], error) {
	actors, err := s.repo.Actor.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get actors: %w", err)
	}

	total, err := s.repo.Actor.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count actors: %w", err)
	}

	data := make([]response.ActorResponse, 0, len(actors))
	for _, a := range actors {
		data = append(data, response.ActorToResponse(a))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *catalogService) CreateActor(ctx context.Context, req *request.ActorRequest) (*response.ActorResponse, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	now := time.Now()
	actor := &entity.Actor{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := s.repo.Actor.Create(ctx, actor); err != nil {
		return nil, fmt.Errorf("create actor: %w", err)
	}

	s.log.Info("Actor created",
		zap.String("actor_id", actor.ID.String()),
		zap.String("full_name", actor.FullName()))

	resp := response.ActorToResponse(actor)
	return &resp, nil
}

func (s *catalogService) GetCinemaHalls(ctx context.Context, req request.PaginatedRequest) (*response.PaginatedResponse[response.CinemaHallResponse], error) {
	halls, err := s.repo.Hall.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get cinema halls: %w", err)
	}

	total, err := s.repo.Hall.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count cinema halls: %w", err)
	}

	data := make([]response.CinemaHallResponse, 0, len(halls))
	for _, h := range halls {
		data = append(data, response.CinemaHallToResponse(h))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *catalogService) CreateCinemaHall(ctx context.Context, req *request.CinemaHallRequest) (*response.CinemaHallResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	now := time.Now()
	hall := &entity.CinemaHall{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fieldError("name", "Cinema hall with this name already exists")
		}
		return nil, fmt.Errorf("create cinema hall: %w", err)
	}

	s.log.Info("Cinema hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("name", hall.Name),
		zap.Int("capacity", hall.Capacity()))

	resp := response.CinemaHallToResponse(hall)
	return &resp, nil
}
