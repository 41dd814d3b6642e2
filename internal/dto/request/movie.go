package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description"`
	Duration    int      `json:"duration" validate:"gt=0"`
	Genres      []string `json:"genres" validate:"dive,uuid"`
	Actors      []string `json:"actors" validate:"dive,uuid"`
}

// MovieFilterRequest is read from the query string. Genres and Actors are
// comma separated ids.
type MovieFilterRequest struct {
	PaginatedRequest
	Title  string `json:"title"`
	Genres string `json:"genres"`
	Actors string `json:"actors"`
}
