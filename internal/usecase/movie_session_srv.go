package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieSessionService interface {
	GetMovieSessions(ctx context.Context, req *request.MovieSessionFilterRequest) (*response.PaginatedResponse[response.MovieSessionListResponse], error)
	GetMovieSessionByID(ctx context.Context, sessionID string) (*response.MovieSessionDetailResponse, error)
	CreateMovieSession(ctx context.Context, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error)
	UpdateMovieSession(ctx context.Context, sessionID string, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error)
	DeleteMovieSession(ctx context.Context, sessionID string) error
}

type movieSessionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieSessionService(repo *repository.Repository, log *zap.Logger) MovieSessionService {
	return &movieSessionService{
		repo: repo,
		log:  log.With(zap.String("service", "movie_session")),
	}
}

func (s *movieSessionService) GetMovieSessions(ctx context.Context, req *request.MovieSessionFilterRequest) (*response.PaginatedResponse[response.MovieSessionListResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	var filter entity.MovieSessionFilter
	if req.Date != "" {
		date, _ := time.Parse(time.DateOnly, req.Date)
		filter.Date = &date
	}
	if req.Movie != "" {
		movieID := uuid.MustParse(req.Movie)
		filter.MovieID = &movieID
	}

	sessions, err := s.repo.MovieSession.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movie sessions",
			zap.Error(err),
			zap.String("date", req.Date),
			zap.String("movie", req.Movie),
		)
		return nil, fmt.Errorf("get movie sessions: %w", err)
	}

	total, err := s.repo.MovieSession.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movie sessions: %w", err)
	}

	data := make([]response.MovieSessionListResponse, 0, len(sessions))
	for _, ms := range sessions {
		data = append(data, response.MovieSessionToListResponse(ms))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *movieSessionService) GetMovieSessionByID(ctx context.Context, sessionID string) (*response.MovieSessionDetailResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, notFound("movie session", sessionID)
	}

	view, err := s.repo.MovieSession.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie session: %w", err)
	}
	if view == nil {
		return nil, notFound("movie session", sessionID)
	}

	tickets, err := s.repo.Ticket.FindBySessionID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get taken places: %w", err)
	}

	resp := response.MovieSessionToDetailResponse(view, tickets)
	return &resp, nil
}

func (s *movieSessionService) CreateMovieSession(ctx context.Context, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error) {
	movieID, hall, err := s.checkReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &entity.MovieSession{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ShowTime:     req.ShowTime,
		MovieID:      movieID,
		CinemaHallID: hall.ID,
	}

	if err := s.repo.MovieSession.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, fieldError("movie", "Movie or cinema hall no longer exists")
		}
		return nil, fmt.Errorf("create movie session: %w", err)
	}

	s.log.Info("Movie session created",
		zap.String("movie_session_id", session.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.Time("show_time", session.ShowTime),
	)

	resp := response.MovieSessionToResponse(session)
	return &resp, nil
}

func (s *movieSessionService) UpdateMovieSession(ctx context.Context, sessionID string, req *request.MovieSessionRequest) (*response.MovieSessionResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, notFound("movie session", sessionID)
	}

	current, err := s.repo.MovieSession.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie session: %w", err)
	}
	if current == nil {
		return nil, notFound("movie session", sessionID)
	}

	movieID, hall, err := s.checkReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	if hall.ID != current.CinemaHallID {
		if err := s.checkSoldSeatsFit(ctx, id, hall); err != nil {
			return nil, err
		}
	}

	session := &entity.MovieSession{
		Base: entity.Base{
			ID:        id,
			CreatedAt: current.CreatedAt,
			UpdatedAt: time.Now(),
		},
		ShowTime:     req.ShowTime,
		MovieID:      movieID,
		CinemaHallID: hall.ID,
	}

	if err := s.repo.MovieSession.Update(ctx, session); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("movie session", sessionID)
		case errors.Is(err, repository.ErrMissingReference):
			return nil, fieldError("movie", "Movie or cinema hall no longer exists")
		case errors.Is(err, repository.ErrReferenced):
			return nil, fmt.Errorf("movie session %s has tickets outside cinema hall %s: %w", sessionID, hall.ID, ErrConflict)
		}
		return nil, fmt.Errorf("update movie session: %w", err)
	}

	s.log.Info("Movie session updated", zap.String("movie_session_id", sessionID))

	resp := response.MovieSessionToResponse(session)
	return &resp, nil
}

// DeleteMovieSession refuses to remove a session that has sold tickets.
func (s *movieSessionService) DeleteMovieSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return notFound("movie session", sessionID)
	}

	if err := s.repo.MovieSession.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound("movie session", sessionID)
		case errors.Is(err, repository.ErrReferenced):
			return fmt.Errorf("movie session %s has sold tickets: %w", sessionID, ErrConflict)
		}
		return fmt.Errorf("delete movie session: %w", err)
	}

	return nil
}

func (s *movieSessionService) checkReferences(ctx context.Context, req *request.MovieSessionRequest) (uuid.UUID, *entity.CinemaHall, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return uuid.Nil, nil, fieldErrors(errs)
	}

	movieID := uuid.MustParse(req.Movie)
	hallID := uuid.MustParse(req.CinemaHall)

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return uuid.Nil, nil, fieldError("movie", "Movie does not exist")
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("get cinema hall: %w", err)
	}
	if hall == nil {
		return uuid.Nil, nil, fieldError("cinema_hall", "Cinema hall does not exist")
	}

	return movieID, hall, nil
}

// checkSoldSeatsFit refuses a hall change that would leave a sold ticket
// outside the new layout. The update statement repeats the check.
func (s *movieSessionService) checkSoldSeatsFit(ctx context.Context, sessionID uuid.UUID, hall *entity.CinemaHall) error {
	tickets, err := s.repo.Ticket.FindBySessionID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("get session tickets: %w", err)
	}

	layout := hall.Layout()
	for _, t := range tickets {
		if err := booking.ValidateSeat(t.Row, t.Seat, layout); err != nil {
			s.log.Warn("Hall change rejected",
				zap.String("movie_session_id", sessionID.String()),
				zap.String("cinema_hall_id", hall.ID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("ticket at row %d seat %d does not fit cinema hall %s: %w", t.Row, t.Seat, hall.ID, ErrConflict)
		}
	}
	return nil
}
