package repository

import (
	"testing"

	"cinema-api/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMovieWhere(t *testing.T) {
	genre := uuid.New()
	actor := uuid.New()

	where, args := movieWhere(entity.MovieFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = movieWhere(entity.MovieFilter{Title: "dUNE"})
	assert.Equal(t, " WHERE m.title ILIKE '%' || $1 || '%'", where)
	assert.Equal(t, []any{"dUNE"}, args)

	where, args = movieWhere(entity.MovieFilter{
		Title:    "dune",
		GenreIDs: []uuid.UUID{genre},
		ActorIDs: []uuid.UUID{actor},
	})
	assert.Contains(t, where, "m.title ILIKE '%' || $1 || '%' AND ")
	assert.Contains(t, where, "mg.genre_id = ANY($2)")
	assert.Contains(t, where, "ma.actor_id = ANY($3)")
	assert.Equal(t, []any{"dune", []uuid.UUID{genre}, []uuid.UUID{actor}}, args)

	where, args = movieWhere(entity.MovieFilter{ActorIDs: []uuid.UUID{actor}})
	assert.Contains(t, where, "ma.actor_id = ANY($1)")
	assert.NotContains(t, where, "ILIKE")
	assert.Len(t, args, 1)
}
