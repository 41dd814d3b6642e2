package response

import "cinema-api/internal/data/entity"

// MovieResponse is the list shape: genre names and actor full names only.
type MovieResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
	Image       *string  `json:"image"`
}

type MovieDetailResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
	Image       *string         `json:"image"`
}

type MovieImageResponse struct {
	ID    string  `json:"id"`
	Image *string `json:"image"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	genres := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, g.Name)
	}
	actors := make([]string, 0, len(movie.Actors))
	for _, a := range movie.Actors {
		actors = append(actors, a.FullName())
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      genres,
		Actors:      actors,
		Image:       movie.Image,
	}
}

func MovieToDetailResponse(movie *entity.Movie) MovieDetailResponse {
	genres := make([]GenreResponse, 0, len(movie.Genres))
	for i := range movie.Genres {
		genres = append(genres, GenreToResponse(&movie.Genres[i]))
	}
	actors := make([]ActorResponse, 0, len(movie.Actors))
	for i := range movie.Actors {
		actors = append(actors, ActorToResponse(&movie.Actors[i]))
	}

	return MovieDetailResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		Genres:      genres,
		Actors:      actors,
		Image:       movie.Image,
	}
}
