package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
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

type MovieService interface {
	GetMovies(ctx context.Context, req *request.MovieFilterRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieDetailResponse, error)
	UploadImage(ctx context.Context, movieID, filename string, image io.Reader) (*response.MovieImageResponse, error)
}

type movieService struct {
	repo     *repository.Repository
	mediaDir string
	log      *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:     repo,
		mediaDir: config.App.MediaDir,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.MovieFilterRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	genreIDs, err := utils.ParseUUIDList(req.Genres)
	if err != nil {
		return nil, fieldError("genres", "Must be a comma separated list of ids")
	}
	actorIDs, err := utils.ParseUUIDList(req.Actors)
	if err != nil {
		return nil, fieldError("actors", "Must be a comma separated list of ids")
	}

	filter := entity.MovieFilter{
		Title:    strings.TrimSpace(req.Title),
		GenreIDs: genreIDs,
		ActorIDs: actorIDs,
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	if err := s.attachRelations(ctx, movies); err != nil {
		return nil, err
	}

	data := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		data = append(data, response.MovieToResponse(m))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if err := s.attachRelations(ctx, []*entity.Movie{movie}); err != nil {
		return nil, err
	}

	resp := response.MovieToDetailResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieDetailResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fieldErrors(errs)
	}

	genreIDs := mustParseIDs(req.Genres)
	actorIDs := mustParseIDs(req.Actors)

	genres, err := s.repo.Genre.FindByIDs(ctx, genreIDs)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}
	if len(genres) != len(genreIDs) {
		return nil, fieldError("genres", "One or more genres do not exist")
	}

	actors, err := s.repo.Actor.FindByIDs(ctx, actorIDs)
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}
	if len(actors) != len(actorIDs) {
		return nil, fieldError("actors", "One or more actors do not exist")
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
	}

	if err := s.repo.Movie.Create(ctx, movie, genreIDs, actorIDs); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, fieldError("genres", "Referenced genre or actor was removed")
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}

	for _, g := range genres {
		movie.Genres = append(movie.Genres, *g)
	}
	for _, a := range actors {
		movie.Actors = append(movie.Actors, *a)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	resp := response.MovieToDetailResponse(movie)
	return &resp, nil
}

func (s *movieService) UploadImage(ctx context.Context, movieID, filename string, image io.Reader) (*response.MovieImageResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	rel, err := utils.SaveImage(s.mediaDir, "uploads/movies", movie.Title, filename, image)
	if err != nil {
		if errors.Is(err, utils.ErrUnsupportedImage) {
			return nil, fieldError("image", "Upload a valid image (jpg, png, gif or webp)")
		}
		s.log.Error("Failed to store movie image", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("store image: %w", err)
	}

	if err := s.repo.Movie.UpdateImage(ctx, movie.ID, rel); err != nil {
		return nil, fmt.Errorf("update movie image: %w", err)
	}

	s.log.Info("Movie image uploaded",
		zap.String("movie_id", movie.ID.String()),
		zap.String("image", rel))

	return &response.MovieImageResponse{ID: movie.ID.String(), Image: &rel}, nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, notFound("movie", movieID)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie", movieID)
	}

	return movie, nil
}

// attachRelations loads genres and actors for all movies with two queries.
func (s *movieService) attachRelations(ctx context.Context, movies []*entity.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}

	genres, err := s.repo.Genre.FindByMovieIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load movie genres: %w", err)
	}
	actors, err := s.repo.Actor.FindByMovieIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load movie actors: %w", err)
	}

	for _, m := range movies {
		m.Genres = genres[m.ID]
		m.Actors = actors[m.ID]
	}

	return nil
}

// mustParseIDs deduplicates ids that already passed the uuid validator.
func mustParseIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id := uuid.MustParse(r)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
