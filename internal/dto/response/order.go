package response

import (
	"time"

	"cinema-api/internal/data/entity"
)

type TicketSessionResponse struct {
	ShowTime           time.Time `json:"show_time"`
	MovieTitle         string    `json:"movie_title"`
	CinemaHallName     string    `json:"cinema_hall_name"`
	CinemaHallCapacity int       `json:"cinema_hall_capacity"`
}

type TicketResponse struct {
	ID           string                 `json:"id"`
	Row          int                    `json:"row"`
	Seat         int                    `json:"seat"`
	MovieSession string                 `json:"movie_session"`
	Session      *TicketSessionResponse `json:"session,omitempty"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

func TicketToResponse(ticket *entity.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           ticket.ID.String(),
		Row:          ticket.Row,
		Seat:         ticket.Seat,
		MovieSession: ticket.MovieSessionID.String(),
	}

	if ticket.Session != nil {
		resp.Session = &TicketSessionResponse{
			ShowTime:           ticket.Session.ShowTime,
			MovieTitle:         ticket.Session.MovieTitle,
			CinemaHallName:     ticket.Session.CinemaHallName,
			CinemaHallCapacity: ticket.Session.HallCapacity,
		}
	}

	return resp
}

func OrderToResponse(order *entity.Order) OrderResponse {
	tickets := make([]TicketResponse, 0, len(order.Tickets))
	for i := range order.Tickets {
		tickets = append(tickets, TicketToResponse(&order.Tickets[i]))
	}

	return OrderResponse{
		ID:        order.ID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   tickets,
	}
}
