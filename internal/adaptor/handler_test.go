package adaptor_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinema-api/internal/adaptor"
	"cinema-api/internal/booking"
	"cinema-api/internal/data/entity"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/dto/request"
	"cinema-api/internal/dto/response"
	"cinema-api/internal/mocks"
	"cinema-api/internal/usecase"
	"cinema-api/internal/wire"
	"cinema-api/pkg/middleware"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	customerToken = "11111111-1111-1111-1111-111111111111"
	staffToken    = "22222222-2222-2222-2222-222222222222"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type HandlerTestSuite struct {
	suite.Suite
	router   *chi.Mux
	auth     *mocks.MockAuthService
	orders   *mocks.MockOrderService
	sessions *mocks.MockMovieSessionService
	customer uuid.UUID
	staff    uuid.UUID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.auth = new(mocks.MockAuthService)
	s.orders = new(mocks.MockOrderService)
	s.sessions = new(mocks.MockMovieSessionService)
	s.customer = uuid.New()
	s.staff = uuid.New()

	s.auth.On("Authenticate", mock.Anything, customerToken).
		Return(&entity.Principal{UserID: s.customer}, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, staffToken).
		Return(&entity.Principal{UserID: s.staff, IsStaff: true}, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	log := zap.NewNop()
	orderHandler := adaptor.NewOrderHandler(s.orders, log)
	sessionHandler := adaptor.NewMovieSessionHandler(s.sessions, log)

	r := chi.NewRouter()
	r.Use(middleware.Recover(log))
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(s.auth, log))

		r.Get("/api/orders", orderHandler.GetOrders)
		r.Post("/api/orders", orderHandler.CreateOrder)

		r.With(middleware.StaffWrites(log)).Route("/api/movie-sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.GetMovieSessions)
			r.Delete("/{id}", sessionHandler.DeleteMovieSession)
		})
	})
	s.router = r
}

func (s *HandlerTestSuite) do(method, url, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *HandlerTestSuite) TestCreateOrder() {
	sessionID := uuid.New()
	body := request.CreateOrderRequest{Tickets: []request.TicketRequest{
		{Row: 5, Seat: 5, MovieSession: sessionID.String()},
		{Row: 5, Seat: 5, MovieSession: sessionID.String()},
	}}

	tests := []struct {
		name       string
		token      string
		setupMocks func()
		wantStatus int
		wantErrors map[string]string
	}{
		{
			name:       "should reject anonymous callers",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "should reject unknown tokens",
			token:      uuid.NewString(),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "should report the offending ticket",
			token: customerToken,
			setupMocks: func() {
				s.orders.On("CreateOrder", mock.Anything, s.customer, mock.Anything).
					Return(nil, booking.SeatTakenAt(1)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantErrors: map[string]string{"tickets[1].seat": booking.ErrSeatTaken.Error()},
		},
		{
			name:  "should map request validation errors to 400",
			token: customerToken,
			setupMocks: func() {
				s.orders.On("CreateOrder", mock.Anything, s.customer, mock.Anything).
					Return(nil, &usecase.FieldError{Fields: map[string]string{"tickets[0].movie_session": "Must be a valid UUID"}}).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantErrors: map[string]string{"tickets[0].movie_session": "Must be a valid UUID"},
		},
		{
			name:  "should hide database failures",
			token: customerToken,
			setupMocks: func() {
				s.orders.On("CreateOrder", mock.Anything, s.customer, mock.Anything).
					Return(nil, errors.New("connection reset")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:  "should create the order",
			token: customerToken,
			setupMocks: func() {
				s.orders.On("CreateOrder", mock.Anything, s.customer, mock.MatchedBy(func(r *request.CreateOrderRequest) bool {
					return len(r.Tickets) == 2
				})).Return(&response.OrderResponse{ID: uuid.NewString(), CreatedAt: time.Now()}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, env := s.do(http.MethodPost, "/api/orders", tt.token, body)

			s.Equal(tt.wantStatus, w.Code)
			s.Equal(tt.wantStatus < 300, env.Status)
			if tt.wantErrors != nil {
				s.Equal(tt.wantErrors, env.Errors)
			}
		})
	}
}

func (s *HandlerTestSuite) TestCreateOrder_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+customerToken)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
	s.orders.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestGetOrders_OnlyCallersOrders() {
	s.orders.On("GetOrders", mock.Anything, s.customer, request.NewPaginatedRequest("2", "5")).
		Return(response.NewPaginatedResponse([]response.OrderResponse{}, 2, 5, 0), nil).Once()

	w, env := s.do(http.MethodGet, "/api/orders?page=2&per_page=5", customerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.True(env.Status)
	s.orders.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestDeleteMovieSession() {
	id := uuid.NewString()

	tests := []struct {
		name       string
		token      string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "should forbid non staff users",
			token:      customerToken,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "should refuse while tickets are sold",
			token:      staffToken,
			serviceErr: fmt.Errorf("movie session %s has sold tickets: %w", id, usecase.ErrConflict),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "should report a missing session",
			token:      staffToken,
			serviceErr: fmt.Errorf("movie session %s: %w", id, usecase.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			if tt.serviceErr != nil {
				s.sessions.On("DeleteMovieSession", mock.Anything, id).Return(tt.serviceErr).Once()
			}

			w, _ := s.do(http.MethodDelete, "/api/movie-sessions/"+id, tt.token, nil)

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (s *HandlerTestSuite) TestListMovieSessions_AllowedForCustomers() {
	s.sessions.On("GetMovieSessions", mock.Anything, mock.MatchedBy(func(r *request.MovieSessionFilterRequest) bool {
		return r.Date == "2026-10-20" && r.Movie == ""
	})).Return(response.NewPaginatedResponse([]response.MovieSessionListResponse{{TicketsAvailable: 397, CinemaHallCapacity: 400}}, 1, 10, 1), nil).Once()

	w, env := s.do(http.MethodGet, "/api/movie-sessions?date=2026-10-20", customerToken, nil)

	s.Equal(http.StatusOK, w.Code)

	var page response.PaginatedResponse[response.MovieSessionListResponse]
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Require().Len(page.Data, 1)
	s.Equal(397, page.Data[0].TicketsAvailable)
}

// RouterTestSuite drives the production router with mocked repositories.
type RouterTestSuite struct {
	suite.Suite
	router http.Handler
	tokens *mocks.MockTokenRepo
	movies *mocks.MockMovieRepo
	genres *mocks.MockGenreRepo
	actors *mocks.MockActorRepo
	halls  *mocks.MockHallRepo
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	s.tokens = new(mocks.MockTokenRepo)
	s.movies = new(mocks.MockMovieRepo)
	s.genres = new(mocks.MockGenreRepo)
	s.actors = new(mocks.MockActorRepo)
	s.halls = new(mocks.MockHallRepo)

	s.tokens.On("FindPrincipal", mock.Anything, uuid.MustParse(customerToken)).
		Return(&entity.Principal{UserID: uuid.New()}, nil).Maybe()
	s.tokens.On("FindPrincipal", mock.Anything, uuid.MustParse(staffToken)).
		Return(&entity.Principal{UserID: uuid.New(), IsStaff: true}, nil).Maybe()
	s.tokens.On("FindPrincipal", mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	app := wire.Wiring(wire.Deps{
		Repo: &repository.Repository{
			Token: s.tokens,
			Movie: s.movies,
			Genre: s.genres,
			Actor: s.actors,
			Hall:  s.halls,
		},
		Config: &utils.Config{App: utils.AppConfig{Name: "cinema-api-test", MediaDir: s.T().TempDir()}},
		Logger: zap.NewNop(),
	})
	s.router = app.Router
}

func (s *RouterTestSuite) do(method, url, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *RouterTestSuite) TestDeleteMovieIsNotAllowed() {
	for _, token := range []string{customerToken, staffToken} {
		w, env := s.do(http.MethodDelete, "/api/movies/"+uuid.NewString(), token, nil)

		s.Equal(http.StatusMethodNotAllowed, w.Code)
		s.False(env.Status)
	}
}

func (s *RouterTestSuite) TestCatalogWritesRequireStaff() {
	movie := map[string]any{"title": "Dune", "description": "Spice", "duration": 155}
	hall := map[string]any{"name": "Blue", "rows": 10, "seats_in_row": 10}

	tests := []struct {
		name       string
		url        string
		token      string
		body       any
		wantStatus int
	}{
		{name: "anonymous movie", url: "/api/movies", body: movie, wantStatus: http.StatusUnauthorized},
		{name: "customer movie", url: "/api/movies", token: customerToken, body: movie, wantStatus: http.StatusForbidden},
		{name: "customer genre", url: "/api/genres", token: customerToken, body: map[string]any{"name": "Drama"}, wantStatus: http.StatusForbidden},
		{name: "customer actor", url: "/api/actors", token: customerToken, body: map[string]any{"first_name": "Zendaya", "last_name": "Coleman"}, wantStatus: http.StatusForbidden},
		{name: "customer cinema hall", url: "/api/cinema-halls", token: customerToken, body: hall, wantStatus: http.StatusForbidden},
		{name: "customer image upload", url: "/api/movies/" + uuid.NewString() + "/upload-image", token: customerToken, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w, env := s.do(http.MethodPost, tt.url, tt.token, tt.body)

			s.Equal(tt.wantStatus, w.Code)
			s.False(env.Status)
		})
	}

	s.movies.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.genres.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.halls.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestStaffCreatesGenre() {
	s.genres.On("Create", mock.Anything, mock.AnythingOfType("*entity.Genre")).Return(nil).Once()

	w, env := s.do(http.MethodPost, "/api/genres", staffToken, map[string]any{"name": "Drama"})

	s.Equal(http.StatusCreated, w.Code)
	s.True(env.Status)
	s.genres.AssertExpectations(s.T())
}

func (s *RouterTestSuite) TestListMoviesWithFilters() {
	genre := uuid.New()
	actor := uuid.New()
	filter := entity.MovieFilter{Title: "dUNE", GenreIDs: []uuid.UUID{genre}, ActorIDs: []uuid.UUID{actor}}

	s.movies.On("FindAll", mock.Anything, filter, mock.Anything, mock.Anything).Return([]*entity.Movie{}, nil).Once()
	s.movies.On("CountAll", mock.Anything, filter).Return(int64(0), nil).Once()

	w, env := s.do(http.MethodGet, "/api/movies?title=dUNE&genres="+genre.String()+"&actors="+actor.String(), customerToken, nil)

	s.Equal(http.StatusOK, w.Code)
	s.True(env.Status)
	s.movies.AssertExpectations(s.T())

	w, env = s.do(http.MethodGet, "/api/movies?genres=drama", customerToken, nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(env.Errors, "genres")
}

func (s *RouterTestSuite) TestPreflightSkipsAuthentication() {
	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get("Access-Control-Allow-Origin"))
	s.tokens.AssertNotCalled(s.T(), "FindPrincipal", mock.Anything, mock.Anything)
}
