package request

import "time"

type MovieSessionRequest struct {
	ShowTime   time.Time `json:"show_time" validate:"required"`
	Movie      string    `json:"movie" validate:"required,uuid"`
	CinemaHall string    `json:"cinema_hall" validate:"required,uuid"`
}

type MovieSessionFilterRequest struct {
	PaginatedRequest
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Movie string `json:"movie" validate:"omitempty,uuid"`
}
