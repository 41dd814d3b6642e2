package response

import "cinema-api/internal/data/entity"

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ActorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID.String(),
		Name: genre.Name,
	}
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID.String(),
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		FullName:  actor.FullName(),
	}
}
