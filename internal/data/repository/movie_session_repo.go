package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieSessionRepository interface {
	Create(ctx context.Context, session *entity.MovieSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSessionView, error)
	FindAll(ctx context.Context, filter entity.MovieSessionFilter, limit, offset int) ([]*entity.MovieSessionView, error)
	CountAll(ctx context.Context, filter entity.MovieSessionFilter) (int64, error)
	Update(ctx context.Context, session *entity.MovieSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindHalls(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]booking.Hall, error)
}

type movieSessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieSessionRepository(db database.PgxIface, log *zap.Logger) MovieSessionRepository {
	return &movieSessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_session")),
	}
}

// tickets_available is derived from the live ticket count on every read.
const sessionViewSelect = `
	SELECT ms.id, ms.show_time, ms.movie_id, ms.cinema_hall_id, ms.created_at, ms.updated_at,
	       m.title, m.image,
	       h.id, h.name, h.rows, h.seats_in_row, h.created_at, h.updated_at,
	       GREATEST(h.rows * h.seats_in_row - COUNT(t.id), 0) AS tickets_available
	FROM movie_sessions ms
	JOIN movies m ON m.id = ms.movie_id
	JOIN cinema_halls h ON h.id = ms.cinema_hall_id
	LEFT JOIN tickets t ON t.movie_session_id = ms.id
`

const sessionViewGroup = ` GROUP BY ms.id, m.id, h.id`

func (r *movieSessionRepository) Create(ctx context.Context, session *entity.MovieSession) error {
	query := `
		INSERT INTO movie_sessions (id, show_time, movie_id, cinema_hall_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.ShowTime,
		session.MovieID,
		session.CinemaHallID,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if isForeignKeyViolation(err) {
		return ErrMissingReference
	}
	if err != nil {
		r.log.Error("Failed to create movie session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("cinema_hall_id", session.CinemaHallID.String()),
		)
		return fmt.Errorf("create movie session: %w", err)
	}

	return nil
}

func (r *movieSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MovieSessionView, error) {
	query := sessionViewSelect + ` WHERE ms.id = $1` + sessionViewGroup

	view, err := scanSessionView(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie session by ID",
			zap.Error(err),
			zap.String("movie_session_id", id.String()),
		)
		return nil, fmt.Errorf("find movie session by ID %s: %w", id.String(), err)
	}

	return view, nil
}

func (r *movieSessionRepository) FindAll(ctx context.Context, filter entity.MovieSessionFilter, limit, offset int) ([]*entity.MovieSessionView, error) {
	where, args := sessionWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(sessionViewSelect)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(sessionViewGroup)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY ms.show_time, ms.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movie sessions",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find movie sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.MovieSessionView
	for rows.Next() {
		view, err := scanSessionView(rows)
		if err != nil {
			r.log.Error("Failed to scan movie session row", zap.Error(err))
			return nil, fmt.Errorf("scan movie session row: %w", err)
		}
		sessions = append(sessions, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie session rows: %w", err)
	}

	return sessions, nil
}

func (r *movieSessionRepository) CountAll(ctx context.Context, filter entity.MovieSessionFilter) (int64, error) {
	where, args := sessionWhere(filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movie_sessions ms`+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movie sessions", zap.Error(err))
		return 0, fmt.Errorf("count movie sessions: %w", err)
	}

	return total, nil
}

// Update fails with ErrReferenced when a sold ticket would fall outside the
// new hall.
func (r *movieSessionRepository) Update(ctx context.Context, session *entity.MovieSession) error {
	query := `
		UPDATE movie_sessions ms
		SET show_time = $2, movie_id = $3, cinema_hall_id = $4, updated_at = $5
		WHERE ms.id = $1
		  AND NOT EXISTS (
			SELECT 1
			FROM tickets t
			JOIN cinema_halls h ON h.id = $4
			WHERE t.movie_session_id = ms.id
			  AND (t."row" > h.rows OR t.seat > h.seats_in_row)
		  )
	`

	result, err := r.db.Exec(ctx, query,
		session.ID,
		session.ShowTime,
		session.MovieID,
		session.CinemaHallID,
		session.UpdatedAt,
	)

	if isForeignKeyViolation(err) {
		return ErrMissingReference
	}
	if err != nil {
		r.log.Error("Failed to update movie session",
			zap.Error(err),
			zap.String("movie_session_id", session.ID.String()),
		)
		return fmt.Errorf("update movie session %s: %w", session.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movie_sessions WHERE id = $1)`, session.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check movie session %s: %w", session.ID.String(), err)
		}
		if exists {
			return fmt.Errorf("movie session %s has tickets outside the new hall: %w", session.ID.String(), ErrReferenced)
		}
		return fmt.Errorf("movie session %s: %w", session.ID.String(), ErrNotFound)
	}

	return nil
}

// Delete fails with ErrReferenced while tickets exist for the session.
func (r *movieSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM movie_sessions WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return ErrReferenced
	}
	if err != nil {
		r.log.Error("Failed to delete movie session",
			zap.Error(err),
			zap.String("movie_session_id", id.String()),
		)
		return fmt.Errorf("delete movie session %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie session %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Movie session deleted", zap.String("movie_session_id", id.String()))
	return nil
}

// FindHalls returns the hall layout of every existing session in ids.
// Unknown ids are simply absent from the map.
func (r *movieSessionRepository) FindHalls(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]booking.Hall, error) {
	halls := make(map[uuid.UUID]booking.Hall, len(ids))
	if len(ids) == 0 {
		return halls, nil
	}

	query := `
		SELECT ms.id, h.rows, h.seats_in_row
		FROM movie_sessions ms
		JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE ms.id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load session halls", zap.Error(err))
		return nil, fmt.Errorf("find session halls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var hall booking.Hall
		if err := rows.Scan(&id, &hall.Rows, &hall.SeatsInRow); err != nil {
			return nil, fmt.Errorf("scan session hall row: %w", err)
		}
		halls[id] = hall
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session hall rows: %w", err)
	}

	return halls, nil
}

func scanSessionView(row pgx.Row) (*entity.MovieSessionView, error) {
	var v entity.MovieSessionView
	err := row.Scan(
		&v.ID,
		&v.ShowTime,
		&v.MovieID,
		&v.CinemaHallID,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.MovieTitle,
		&v.MovieImage,
		&v.Hall.ID,
		&v.Hall.Name,
		&v.Hall.Rows,
		&v.Hall.SeatsInRow,
		&v.Hall.CreatedAt,
		&v.Hall.UpdatedAt,
		&v.TicketsAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func sessionWhere(filter entity.MovieSessionFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Date != nil {
		args = append(args, filter.Date.Format("2006-01-02"))
		conds = append(conds, fmt.Sprintf("(ms.show_time AT TIME ZONE 'UTC')::date = $%d::date", len(args)))
	}
	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		conds = append(conds, fmt.Sprintf("ms.movie_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
