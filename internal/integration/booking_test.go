//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingSuite struct {
	BaseSuite
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

type sessionDetail struct {
	ShowTime         time.Time `json:"show_time"`
	TicketsAvailable int       `json:"tickets_available"`
	Movie            struct {
		ID string `json:"id"`
	} `json:"movie"`
	CinemaHall struct {
		ID       string `json:"id"`
		Capacity int    `json:"capacity"`
	} `json:"cinema_hall"`
	TakenPlaces []struct {
		Row  int `json:"row"`
		Seat int `json:"seat"`
	} `json:"taken_places"`
}

func (s *BookingSuite) sessionDetail(id, token string) sessionDetail {
	status, env := s.do(http.MethodGet, "/api/movie-sessions/"+id, token, nil)
	s.Require().Equal(http.StatusOK, status, env.Message)

	var detail sessionDetail
	s.decode(env, &detail)
	return detail
}

func (s *BookingSuite) TestTicketsAvailableAfterOrder() {
	showTime := time.Date(2031, 3, 14, 19, 0, 0, 0, time.UTC)
	sessionID := s.createSession(20, 20, showTime)
	customer := s.registerCustomer()

	status, env := s.do(http.MethodPost, "/api/orders", customer, tickets(sessionID, [2]int{1, 1}, [2]int{1, 2}, [2]int{1, 3}))
	s.Require().Equal(http.StatusCreated, status, env.Message)

	detail := s.sessionDetail(sessionID, customer)
	s.Equal(397, detail.TicketsAvailable)
	s.Len(detail.TakenPlaces, 3)

	status, env = s.do(http.MethodGet, "/api/movie-sessions?date=2031-03-14", customer, nil)
	s.Require().Equal(http.StatusOK, status)

	var page struct {
		Data []struct {
			ID                 string `json:"id"`
			CinemaHallCapacity int    `json:"cinema_hall_capacity"`
			TicketsAvailable   int    `json:"tickets_available"`
		} `json:"data"`
	}
	s.decode(env, &page)
	s.Require().Len(page.Data, 1)
	s.Equal(sessionID, page.Data[0].ID)
	s.Equal(400, page.Data[0].CinemaHallCapacity)
	s.Equal(397, page.Data[0].TicketsAvailable)
}

func (s *BookingSuite) TestOrderIsAllOrNothing() {
	sessionID := s.createSession(20, 20, time.Date(2031, 4, 1, 18, 0, 0, 0, time.UTC))
	customer := s.registerCustomer()

	status, env := s.do(http.MethodPost, "/api/orders", customer, tickets(sessionID, [2]int{2, 1}, [2]int{21, 1}))
	s.Equal(http.StatusBadRequest, status)
	s.Equal(map[string]string{"tickets[1].row": "row 21 must be between 1 and 20"}, env.Errors)

	detail := s.sessionDetail(sessionID, customer)
	s.Equal(400, detail.TicketsAvailable)
	s.Empty(detail.TakenPlaces)

	status, env = s.do(http.MethodGet, "/api/orders", customer, nil)
	s.Require().Equal(http.StatusOK, status)
	var orders struct {
		Data []json.RawMessage `json:"data"`
	}
	s.decode(env, &orders)
	s.Empty(orders.Data)
}

func (s *BookingSuite) TestSeatSoldTwice() {
	sessionID := s.createSession(5, 5, time.Date(2031, 5, 1, 18, 0, 0, 0, time.UTC))
	first := s.registerCustomer()
	second := s.registerCustomer()

	status, _ := s.do(http.MethodPost, "/api/orders", first, tickets(sessionID, [2]int{3, 3}))
	s.Require().Equal(http.StatusCreated, status)

	status, env := s.do(http.MethodPost, "/api/orders", second, tickets(sessionID, [2]int{1, 1}, [2]int{3, 3}))
	s.Equal(http.StatusBadRequest, status)
	s.Contains(env.Errors, "tickets[1].seat")

	detail := s.sessionDetail(sessionID, second)
	s.Equal(24, detail.TicketsAvailable)
}

func (s *BookingSuite) TestConcurrentOrdersForTheSameSeat() {
	sessionID := s.createSession(5, 5, time.Date(2031, 6, 1, 18, 0, 0, 0, time.UTC))

	const buyers = 8
	tokens := make([]string, buyers)
	for i := range tokens {
		tokens[i] = s.registerCustomer()
	}

	body, err := json.Marshal(tickets(sessionID, [2]int{4, 4}))
	s.Require().NoError(err)

	codes := make([]int, buyers)
	var wg sync.WaitGroup
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
			req.Header.Set("Authorization", "Bearer "+tokens[i])
			rec := httptest.NewRecorder()
			s.router.ServeHTTP(rec, req)
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	created, rejected := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		}
	}
	s.Equal(1, created, "codes: %v", codes)
	s.Equal(buyers-1, rejected, "codes: %v", codes)

	detail := s.sessionDetail(sessionID, tokens[0])
	s.Equal(24, detail.TicketsAvailable)
	s.Len(detail.TakenPlaces, 1)
}

func (s *BookingSuite) TestDeleteSessionWithSoldTickets() {
	sold := s.createSession(5, 5, time.Date(2031, 7, 1, 18, 0, 0, 0, time.UTC))
	empty := s.createSession(5, 5, time.Date(2031, 7, 1, 21, 0, 0, 0, time.UTC))
	customer := s.registerCustomer()

	status, _ := s.do(http.MethodPost, "/api/orders", customer, tickets(sold, [2]int{1, 1}))
	s.Require().Equal(http.StatusCreated, status)

	status, _ = s.do(http.MethodDelete, "/api/movie-sessions/"+sold, s.staffToken, nil)
	s.Equal(http.StatusConflict, status)

	status, _ = s.do(http.MethodDelete, "/api/movie-sessions/"+empty, s.staffToken, nil)
	s.Equal(http.StatusNoContent, status)

	status, _ = s.do(http.MethodGet, "/api/movie-sessions/"+empty, customer, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *BookingSuite) TestOrdersAreScopedToTheCaller() {
	sessionID := s.createSession(5, 5, time.Date(2031, 8, 1, 18, 0, 0, 0, time.UTC))
	alice := s.registerCustomer()
	bob := s.registerCustomer()

	status, _ := s.do(http.MethodPost, "/api/orders", alice, tickets(sessionID, [2]int{1, 1}))
	s.Require().Equal(http.StatusCreated, status)

	status, env := s.do(http.MethodGet, "/api/orders", bob, nil)
	s.Require().Equal(http.StatusOK, status)

	var orders struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	s.decode(env, &orders)
	s.Empty(orders.Data)
	s.Zero(orders.Pagination.Total)
}

func (s *BookingSuite) TestOrderRateLimit() {
	config := *s.config
	config.RateLimit.Enabled = true
	limited := s.newRouter(config)

	sessionID := s.createSession(5, 5, time.Date(2031, 9, 1, 18, 0, 0, 0, time.UTC))
	customer := s.registerCustomer()

	var codes []int
	for seat := 1; seat <= 3; seat++ {
		status, _ := s.call(limited, http.MethodPost, "/api/orders", customer, tickets(sessionID, [2]int{1, seat}))
		codes = append(codes, status)
	}

	s.Equal([]int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
}

func (s *BookingSuite) TestMoveSessionWithSoldTicketsToSmallerHall() {
	sessionID := s.createSession(20, 20, time.Date(2031, 10, 1, 18, 0, 0, 0, time.UTC))
	customer := s.registerCustomer()

	status, _ := s.do(http.MethodPost, "/api/orders", customer, tickets(sessionID, [2]int{20, 20}))
	s.Require().Equal(http.StatusCreated, status)

	var small struct {
		ID string `json:"id"`
	}
	status, env := s.do(http.MethodPost, "/api/cinema-halls", s.staffToken, map[string]any{
		"name": "Small " + uuid.NewString()[:8], "rows": 2, "seats_in_row": 2,
	})
	s.Require().Equal(http.StatusCreated, status, env.Message)
	s.decode(env, &small)

	before := s.sessionDetail(sessionID, customer)

	status, _ = s.do(http.MethodPut, "/api/movie-sessions/"+sessionID, s.staffToken, map[string]any{
		"show_time": before.ShowTime, "movie": before.Movie.ID, "cinema_hall": small.ID,
	})
	s.Equal(http.StatusConflict, status)

	after := s.sessionDetail(sessionID, customer)
	s.Equal(before.CinemaHall.ID, after.CinemaHall.ID)
	s.Equal(399, after.TicketsAvailable)
}
