package repository

import (
	"context"
	"fmt"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

// Create inserts the order and its tickets in one transaction. When the
// tickets unique constraint rejects a seat the whole order is rolled back and
// the error carries the index of the rejected ticket.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	failedAt := -1

	err := database.RunInTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO orders (id, user_id, created_at)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.Exec(ctx, query, order.ID, order.UserID, order.CreatedAt); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, t := range order.Tickets {
			batch.Queue(`
				INSERT INTO tickets (id, order_id, movie_session_id, "row", seat, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, t.ID, order.ID, t.MovieSessionID, t.Row, t.Seat, i)
		}

		br := tx.SendBatch(ctx, batch)
		for i := range order.Tickets {
			if _, err := br.Exec(); err != nil {
				failedAt = i
				_ = br.Close()
				return err
			}
		}
		return br.Close()
	})

	switch {
	case err == nil:
		return nil
	case isSeatTaken(err):
		r.log.Info("Seat taken by a concurrent order",
			zap.String("order_id", order.ID.String()),
			zap.Int("ticket_index", failedAt),
		)
		return booking.SeatTakenAt(failedAt)
	case isForeignKeyViolation(err):
		return ErrMissingReference
	}

	r.log.Error("Failed to create order",
		zap.Error(err),
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", order.UserID.String()),
	)
	return fmt.Errorf("create order %s: %w", order.ID.String(), err)
}

// FindByUserID returns the user's orders newest first, tickets not loaded.
func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find orders by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find orders by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.CreatedAt); err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count orders by user %s: %w", userID.String(), err)
	}

	return count, nil
}
