//go:build integration

package integration_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type MovieSuite struct {
	BaseSuite
}

func TestMovieSuite(t *testing.T) {
	suite.Run(t, new(MovieSuite))
}

func (s *MovieSuite) create(path string, body map[string]any) string {
	status, env := s.do(http.MethodPost, path, s.staffToken, body)
	s.Require().Equal(http.StatusCreated, status, env.Message)

	var created struct {
		ID string `json:"id"`
	}
	s.decode(env, &created)
	return created.ID
}

func (s *MovieSuite) titles(query url.Values, token string) []string {
	status, env := s.do(http.MethodGet, "/api/movies?"+query.Encode(), token, nil)
	s.Require().Equal(http.StatusOK, status, env.Message)

	var page struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	s.decode(env, &page)

	titles := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		titles = append(titles, m.Title)
	}
	return titles
}

func (s *MovieSuite) TestListFilters() {
	tag := uuid.NewString()[:8]
	customer := s.registerCustomer()

	scifi := s.create("/api/genres", map[string]any{"name": "Sci-Fi " + tag})
	drama := s.create("/api/genres", map[string]any{"name": "Drama " + tag})
	adams := s.create("/api/actors", map[string]any{"first_name": "Amy", "last_name": "Adams " + tag})

	dune := "Dune " + tag
	arrival := "Arrival " + tag
	s.create("/api/movies", map[string]any{
		"title": dune, "description": "Spice", "duration": 155, "genres": []string{scifi},
	})
	s.create("/api/movies", map[string]any{
		"title": arrival, "description": "Heptapods", "duration": 116,
		"genres": []string{scifi, drama}, "actors": []string{adams},
	})

	s.Equal([]string{dune}, s.titles(url.Values{"title": {strings.ToUpper("dune " + tag)}}, customer))
	s.ElementsMatch([]string{dune, arrival}, s.titles(url.Values{"genres": {scifi}}, customer))
	s.Equal([]string{arrival}, s.titles(url.Values{"genres": {drama}}, customer))
	s.Equal([]string{arrival}, s.titles(url.Values{"actors": {adams}}, customer))
	s.Empty(s.titles(url.Values{"title": {"dune " + tag}, "actors": {adams}}, customer))
}

func (s *MovieSuite) TestMoviesCannotBeDeleted() {
	id := s.create("/api/movies", map[string]any{"title": "Solaris", "description": "Ocean", "duration": 167})

	status, _ := s.do(http.MethodDelete, "/api/movies/"+id, s.staffToken, nil)
	s.Equal(http.StatusMethodNotAllowed, status)

	status, _ = s.do(http.MethodGet, "/api/movies/"+id, s.staffToken, nil)
	s.Equal(http.StatusOK, status)
}

func (s *MovieSuite) TestCustomersCannotWriteCatalog() {
	customer := s.registerCustomer()

	status, _ := s.do(http.MethodPost, "/api/movies", customer, map[string]any{"title": "Stalker", "duration": 161})
	s.Equal(http.StatusForbidden, status)

	status, _ = s.do(http.MethodPost, "/api/genres", customer, map[string]any{"name": "Noir"})
	s.Equal(http.StatusForbidden, status)
}
