package request

// TicketRequest bounds are checked against the hall by the booking checker,
// so row and seat carry no validator tags.
type TicketRequest struct {
	Row          int    `json:"row"`
	Seat         int    `json:"seat"`
	MovieSession string `json:"movie_session" validate:"required,uuid"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"dive"`
}
