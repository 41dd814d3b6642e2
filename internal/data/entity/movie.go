package entity

import "github.com/google/uuid"

type Movie struct {
	Base
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Duration    int     `db:"duration"` // minutes
	Image       *string `db:"image"`

	Genres []Genre
	Actors []Actor
}

// MovieFilter narrows the movie list. Empty fields are ignored.
type MovieFilter struct {
	Title    string
	GenreIDs []uuid.UUID
	ActorIDs []uuid.UUID
}
