package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error)
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// Create stores the movie and its genre and actor links in one transaction.
func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie, genreIDs, actorIDs []uuid.UUID) error {
	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (id, title, description, duration, image, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		_, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Description,
			movie.Duration,
			movie.Image,
			movie.CreatedAt,
			movie.UpdatedAt,
		)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, genreID := range genreIDs {
			batch.Queue(`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, movie.ID, genreID)
		}
		for _, actorID := range actorIDs {
			batch.Queue(`INSERT INTO movie_actors (movie_id, actor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, movie.ID, actorID)
		}
		if batch.Len() == 0 {
			return nil
		}

		return tx.SendBatch(ctx, batch).Close()
	})

	if isForeignKeyViolation(err) {
		return ErrMissingReference
	}
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, duration, image, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.Image,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	where, args := movieWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT m.id, m.title, m.description, m.duration, m.image, m.created_at, m.updated_at
		FROM movies m
	`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY m.title, m.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
			zap.String("title", filter.Title),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Duration,
			&movie.Image,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	where, args := movieWhere(filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies m `+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	query := `UPDATE movies SET image = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, image)
	if err != nil {
		r.log.Error("Failed to update movie image",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("update movie image %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

// movieWhere builds the WHERE clause shared by FindAll and CountAll.
// A movie matches genres/actors when it links to at least one of the given ids.
func movieWhere(filter entity.MovieFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Title != "" {
		args = append(args, filter.Title)
		conds = append(conds, fmt.Sprintf("m.title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if len(filter.GenreIDs) > 0 {
		args = append(args, filter.GenreIDs)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = ANY($%d))", len(args)))
	}
	if len(filter.ActorIDs) > 0 {
		args = append(args, filter.ActorIDs)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_actors ma WHERE ma.movie_id = m.id AND ma.actor_id = ANY($%d))", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
