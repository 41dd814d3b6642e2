package repository

import (
	"context"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActorRepository interface {
	Create(ctx context.Context, actor *entity.Actor) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Actor, error)
	CountAll(ctx context.Context) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Actor, error)
	FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Actor, error)
}

type actorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActorRepository(db database.PgxIface, log *zap.Logger) ActorRepository {
	return &actorRepository{
		db:  db,
		log: log.With(zap.String("repository", "actor")),
	}
}

func (r *actorRepository) Create(ctx context.Context, actor *entity.Actor) error {
	query := `
		INSERT INTO actors (id, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		actor.ID,
		actor.FirstName,
		actor.LastName,
		actor.CreatedAt,
		actor.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create actor",
			zap.Error(err),
			zap.String("full_name", actor.FullName()),
		)
		return fmt.Errorf("create actor %s: %w", actor.FullName(), err)
	}

	return nil
}

func (r *actorRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Actor, error) {
	query := `
		SELECT id, first_name, last_name, created_at, updated_at
		FROM actors
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`

	return r.query(ctx, query, limit, offset)
}

func (r *actorRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM actors`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count actors", zap.Error(err))
		return 0, fmt.Errorf("count actors: %w", err)
	}

	return count, nil
}

func (r *actorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Actor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, first_name, last_name, created_at, updated_at
		FROM actors
		WHERE id = ANY($1)
		ORDER BY last_name, first_name
	`

	return r.query(ctx, query, ids)
}

func (r *actorRepository) FindByMovieIDs(ctx context.Context, movieIDs []uuid.UUID) (map[uuid.UUID][]entity.Actor, error) {
	result := make(map[uuid.UUID][]entity.Actor, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ma.movie_id, a.id, a.first_name, a.last_name, a.created_at, a.updated_at
		FROM actors a
		INNER JOIN movie_actors ma ON a.id = ma.actor_id
		WHERE ma.movie_id = ANY($1)
		ORDER BY a.last_name, a.first_name
	`

	rows, err := r.db.Query(ctx, query, movieIDs)
	if err != nil {
		r.log.Error("Failed to find actors by movie IDs", zap.Error(err))
		return nil, fmt.Errorf("find actors by movie ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID uuid.UUID
		var actor entity.Actor
		err := rows.Scan(
			&movieID,
			&actor.ID,
			&actor.FirstName,
			&actor.LastName,
			&actor.CreatedAt,
			&actor.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		result[movieID] = append(result[movieID], actor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actor rows: %w", err)
	}

	return result, nil
}

func (r *actorRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Actor, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query actors", zap.Error(err))
		return nil, fmt.Errorf("query actors: %w", err)
	}
	defer rows.Close()

	var actors []*entity.Actor
	for rows.Next() {
		var actor entity.Actor
		err := rows.Scan(
			&actor.ID,
			&actor.FirstName,
			&actor.LastName,
			&actor.CreatedAt,
			&actor.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan actor row", zap.Error(err))
			return nil, fmt.Errorf("scan actor row: %w", err)
		}
		actors = append(actors, &actor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actor rows: %w", err)
	}

	return actors, nil
}
