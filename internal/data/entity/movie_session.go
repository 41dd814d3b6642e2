package entity

import (
	"time"

	"github.com/google/uuid"
)

type MovieSession struct {
	Base
	ShowTime     time.Time `db:"show_time"`
	MovieID      uuid.UUID `db:"movie_id"`
	CinemaHallID uuid.UUID `db:"cinema_hall_id"`
}

// MovieSessionView is a session joined with its movie and hall. TicketsAvailable
// is computed by the query on every read.
type MovieSessionView struct {
	MovieSession
	MovieTitle       string
	MovieImage       *string
	Hall             CinemaHall
	TicketsAvailable int
}

type MovieSessionFilter struct {
	Date    *time.Time
	MovieID *uuid.UUID
}
