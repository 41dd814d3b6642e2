package response

import (
	"time"

	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
)

type MovieSessionResponse struct {
	ID         string    `json:"id"`
	ShowTime   time.Time `json:"show_time"`
	Movie      string    `json:"movie"`
	CinemaHall string    `json:"cinema_hall"`
}

type MovieSessionListResponse struct {
	ID                 string    `json:"id"`
	ShowTime           time.Time `json:"show_time"`
	MovieTitle         string    `json:"movie_title"`
	MovieImage         *string   `json:"movie_image"`
	CinemaHallName     string    `json:"cinema_hall_name"`
	CinemaHallCapacity int       `json:"cinema_hall_capacity"`
	TicketsAvailable   int       `json:"tickets_available"`
}

type MovieSummary struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Image *string `json:"image"`
}

type TakenPlace struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type MovieSessionDetailResponse struct {
	ID               string             `json:"id"`
	ShowTime         time.Time          `json:"show_time"`
	Movie            MovieSummary       `json:"movie"`
	CinemaHall       CinemaHallResponse `json:"cinema_hall"`
	TicketsAvailable int                `json:"tickets_available"`
	TakenPlaces      []TakenPlace       `json:"taken_places"`
}

func MovieSessionToResponse(session *entity.MovieSession) MovieSessionResponse {
	return MovieSessionResponse{
		ID:         session.ID.String(),
		ShowTime:   session.ShowTime,
		Movie:      session.MovieID.String(),
		CinemaHall: session.CinemaHallID.String(),
	}
}

func MovieSessionToListResponse(view *entity.MovieSessionView) MovieSessionListResponse {
	return MovieSessionListResponse{
		ID:                 view.ID.String(),
		ShowTime:           view.ShowTime,
		MovieTitle:         view.MovieTitle,
		MovieImage:         view.MovieImage,
		CinemaHallName:     view.Hall.Name,
		CinemaHallCapacity: view.Hall.Capacity(),
		TicketsAvailable:   view.TicketsAvailable,
	}
}

// MovieSessionToDetailResponse derives tickets_available from the listed tickets
// so the count always agrees with taken_places.
func MovieSessionToDetailResponse(view *entity.MovieSessionView, tickets []entity.Ticket) MovieSessionDetailResponse {
	taken := make([]TakenPlace, 0, len(tickets))
	for _, t := range tickets {
		taken = append(taken, TakenPlace{Row: t.Row, Seat: t.Seat})
	}

	return MovieSessionDetailResponse{
		ID:       view.ID.String(),
		ShowTime: view.ShowTime,
		Movie: MovieSummary{
			ID:    view.MovieID.String(),
			Title: view.MovieTitle,
			Image: view.MovieImage,
		},
		CinemaHall:       CinemaHallToResponse(&view.Hall),
		TicketsAvailable: booking.Available(view.Hall.Capacity(), len(tickets)),
		TakenPlaces:      taken,
	}
}
