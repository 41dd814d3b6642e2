package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	Create(ctx context.Context, hall *entity.CinemaHall) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CinemaHall, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.CinemaHall, error)
	CountAll(ctx context.Context) (int64, error)
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema_hall")),
	}
}

func (r *hallRepository) Create(ctx context.Context, hall *entity.CinemaHall) error {
	query := `
		INSERT INTO cinema_halls (id, name, rows, seats_in_row, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Rows,
		hall.SeatsInRow,
		hall.CreatedAt,
		hall.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		r.log.Error("Failed to create cinema hall",
			zap.Error(err),
			zap.String("name", hall.Name),
		)
		return fmt.Errorf("create cinema hall %s: %w", hall.Name, err)
	}

	return nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CinemaHall, error) {
	query := `
		SELECT id, name, rows, seats_in_row, created_at, updated_at
		FROM cinema_halls
		WHERE id = $1
	`

	var hall entity.CinemaHall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Rows,
		&hall.SeatsInRow,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find cinema hall by ID %s: %w", id.String(), err)
	}

	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.CinemaHall, error) {
	query := `
		SELECT id, name, rows, seats_in_row, created_at, updated_at
		FROM cinema_halls
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find cinema halls",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find cinema halls: %w", err)
	}
	defer rows.Close()

	var halls []*entity.CinemaHall
	for rows.Next() {
		var hall entity.CinemaHall
		err := rows.Scan(
			&hall.ID,
			&hall.Name,
			&hall.Rows,
			&hall.SeatsInRow,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan cinema hall row", zap.Error(err))
			return nil, fmt.Errorf("scan cinema hall row: %w", err)
		}
		halls = append(halls, &hall)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cinema hall rows: %w", err)
	}

	return halls, nil
}

func (r *hallRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cinema_halls`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count cinema halls", zap.Error(err))
		return 0, fmt.Errorf("count cinema halls: %w", err)
	}

	return count, nil
}
