package entity

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID             uuid.UUID `db:"id"`
	OrderID        uuid.UUID `db:"order_id"`
	MovieSessionID uuid.UUID `db:"movie_session_id"`
	Row            int       `db:"row"`
	Seat           int       `db:"seat"`

	// filled when tickets are listed with their session
	Session *TicketSession
}

type TicketSession struct {
	ShowTime       time.Time
	MovieTitle     string
	CinemaHallName string
	HallCapacity   int
}
