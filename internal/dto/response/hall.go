package response

import "cinema-api/internal/data/entity"

type CinemaHallResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

func CinemaHallToResponse(hall *entity.CinemaHall) CinemaHallResponse {
	return CinemaHallResponse{
		ID:         hall.ID.String(),
		Name:       hall.Name,
		Rows:       hall.Rows,
		SeatsInRow: hall.SeatsInRow,
		Capacity:   hall.Capacity(),
	}
}
