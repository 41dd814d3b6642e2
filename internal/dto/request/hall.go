package request

type CinemaHallRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Rows       int    `json:"rows" validate:"gt=0,max=1000"`
	SeatsInRow int    `json:"seats_in_row" validate:"gt=0,max=1000"`
}
