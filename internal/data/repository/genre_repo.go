package repository

import (
	"context"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Genre, error)
	CountAll(ctx context.Context) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error)
	FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Genre, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

// Create returns ErrDuplicate when the name is already used
func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `
		INSERT INTO genres (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, genre.ID, genre.Name, genre.CreatedAt, genre.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre %s: %w", genre.Name, err)
	}

	return nil
}

func (r *genreRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Genre, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM genres
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	return r.query(ctx, query, limit, offset)
}

func (r *genreRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count genres", zap.Error(err))
		return 0, fmt.Errorf("count genres: %w", err)
	}

	return count, nil
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, created_at, updated_at
		FROM genres
		WHERE id = ANY($1)
		ORDER BY name
	`

	return r.query(ctx, query, ids)
}

// FindByMovieIDs groups the genres of several movies by movie id.
func (r *genreRepository) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Genre, error) {
	result := make(map[uuid.UUID][]entity.Genre, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT mg.movie_id, g.id, g.name, g.created_at, g.updated_at
		FROM genres g
		INNER JOIN movie_genres mg ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, movieIDs)
	if err != nil {
		r.log.Error("Failed to find genres by movie IDs", zap.Error(err))
		return nil, fmt.Errorf("find genres by movie ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID uuid.UUID
		var genre entity.Genre
		if err := rows.Scan(&movieID, &genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		result[movieID] = append(result[movieID], genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return result, nil
}

func (r *genreRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Genre, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query genres", zap.Error(err))
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var genres []*entity.Genre
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt, &genre.UpdatedAt); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}
