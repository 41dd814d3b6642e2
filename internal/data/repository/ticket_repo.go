package repository

import (
	"context"
	"fmt"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	FindTakenPlaces(ctx context.Context, sessionIDs []uuid.UUID) (map[booking.Place]struct{}, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entity.Ticket, error)
	FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

// FindTakenPlaces returns every sold place of the given sessions.
func (r *ticketRepository) FindTakenPlaces(ctx context.Context, sessionIDs []uuid.UUID) (map[booking.Place]struct{}, error) {
	taken := make(map[booking.Place]struct{})
	if len(sessionIDs) == 0 {
		return taken, nil
	}

	query := `
		SELECT movie_session_id, "row", seat
		FROM tickets
		WHERE movie_session_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, sessionIDs)
	if err != nil {
		r.log.Error("Failed to find taken places", zap.Error(err))
		return nil, fmt.Errorf("find taken places: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p booking.Place
		if err := rows.Scan(&p.SessionID, &p.Row, &p.Seat); err != nil {
			return nil, fmt.Errorf("scan taken place row: %w", err)
		}
		taken[p] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate taken place rows: %w", err)
	}

	return taken, nil
}

func (r *ticketRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entity.Ticket, error) {
	query := `
		SELECT id, order_id, movie_session_id, "row", seat
		FROM tickets
		WHERE movie_session_id = $1
		ORDER BY "row", seat
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find tickets by session",
			zap.Error(err),
			zap.String("movie_session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find tickets by session %s: %w", sessionID.String(), err)
	}
	defer rows.Close()

	var tickets []entity.Ticket
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.MovieSessionID, &t.Row, &t.Seat); err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return tickets, nil
}

// FindByOrderIDs loads tickets with their session summary, keeping the
// order in which they were requested.
func (r *ticketRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]entity.Ticket, error) {
	result := make(map[uuid.UUID][]entity.Ticket, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT t.id, t.order_id, t.movie_session_id, t."row", t.seat,
		       ms.show_time, m.title, h.name, h.rows * h.seats_in_row
		FROM tickets t
		JOIN movie_sessions ms ON ms.id = t.movie_session_id
		JOIN movies m ON m.id = ms.movie_id
		JOIN cinema_halls h ON h.id = ms.cinema_hall_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.order_id, t.position
	`

	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		r.log.Error("Failed to find tickets by order IDs", zap.Error(err))
		return nil, fmt.Errorf("find tickets by order ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.Ticket
		var s entity.TicketSession
		err := rows.Scan(
			&t.ID,
			&t.OrderID,
			&t.MovieSessionID,
			&t.Row,
			&t.Seat,
			&s.ShowTime,
			&s.MovieTitle,
			&s.CinemaHallName,
			&s.HallCapacity,
		)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		t.Session = &s
		result[t.OrderID] = append(result[t.OrderID], t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return result, nil
}
