package entity

import "cinema-api/internal/booking"

type CinemaHall struct {
	Base
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

func (h CinemaHall) Layout() booking.Hall {
	return booking.Hall{Rows: h.Rows, SeatsInRow: h.SeatsInRow}
}

func (h CinemaHall) Capacity() int {
	return h.Layout().Capacity()
}
