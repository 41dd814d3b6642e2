//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"cinema-api/cmd"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/wire"
	"cinema-api/pkg/database"
	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"
)

const (
	dbName         = "cinema"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:16-alpine"
	cacheImageName = "redis:7"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type BaseSuite struct {
	suite.Suite
	dbContainer    *postgres.PostgresContainer
	cacheContainer *tcredis.RedisContainer
	db             *database.DB
	rdb            *redis.Client
	repo           *repository.Repository
	config         *utils.Config
	router         http.Handler
	staffToken     string
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	pg, err := postgres.Run(ctx, dbImageName,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err, "start postgres container")
	s.dbContainer = pg

	host, err := pg.Host(ctx)
	s.Require().NoError(err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	cache, err := tcredis.Run(ctx, cacheImageName)
	s.Require().NoError(err, "start redis container")
	s.cacheContainer = cache

	redisAddr, err := cache.Endpoint(ctx, "")
	s.Require().NoError(err)

	s.config = &utils.Config{
		App: utils.AppConfig{
			Name:     "cinema-api-test",
			MediaDir: s.T().TempDir(),
		},
		Database: utils.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			Name:     dbName,
			User:     dbUser,
			Password: dbPassword,
			MaxConns: 10,
		},
		Auth: utils.AuthConfig{TokenExpiryHours: 1},
		RateLimit: utils.RateLimitConfig{
			Enabled:        false,
			Capacity:       2,
			RefillInterval: time.Minute,
			TTL:            10 * time.Minute,
			Prefix:         "test-rate",
		},
	}

	s.Require().NoError(database.Migrate(s.config.Database.DSN()))

	s.db, err = database.InitDB(ctx, s.config.Database)
	s.Require().NoError(err)

	s.rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
	s.repo = repository.NewRepository(s.db, zap.NewNop())
	s.router = s.newRouter(*s.config)

	s.staffToken = s.registerStaff("staff@cinema.test")
}

func (s *BaseSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) newRouter(config utils.Config) http.Handler {
	app := wire.Wiring(wire.Deps{
		Repo:   s.repo,
		Config: &config,
		Redis:  s.rdb,
		Logger: zap.NewNop(),
	})
	return app.Router
}

func (s *BaseSuite) call(router http.Handler, method, url, token string, body any) (int, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func (s *BaseSuite) do(method, url, token string, body any) (int, envelope) {
	return s.call(s.router, method, url, token, body)
}

func (s *BaseSuite) decode(env envelope, dst any) {
	s.Require().NoError(json.Unmarshal(env.Data, dst))
}

// registerCustomer creates a fresh user and returns its bearer token.
func (s *BaseSuite) registerCustomer() string {
	email := fmt.Sprintf("%s@cinema.test", uuid.NewString())
	return s.register(email)
}

func (s *BaseSuite) register(email string) string {
	creds := map[string]string{"email": email, "password": "correct-horse"}

	status, env := s.do(http.MethodPost, "/api/register", "", creds)
	s.Require().Equal(http.StatusCreated, status, env.Message)

	return s.login(email)
}

func (s *BaseSuite) login(email string) string {
	creds := map[string]string{"email": email, "password": "correct-horse"}

	status, env := s.do(http.MethodPost, "/api/login", "", creds)
	s.Require().Equal(http.StatusOK, status, env.Message)

	var auth struct {
		Token string `json:"token"`
	}
	s.decode(env, &auth)
	s.Require().NotEmpty(auth.Token)
	return auth.Token
}

func (s *BaseSuite) registerStaff(email string) string {
	s.register(email)
	s.Require().NoError(cmd.PromoteStaff(context.Background(), s.repo.User, email, zap.NewNop()))
	return s.login(email)
}

// createSession sets up a movie and a rows x seats hall and schedules a session.
func (s *BaseSuite) createSession(rows, seats int, showTime time.Time) string {
	var created struct {
		ID string `json:"id"`
	}

	status, env := s.do(http.MethodPost, "/api/cinema-halls", s.staffToken, map[string]any{
		"name": "Hall " + uuid.NewString()[:8], "rows": rows, "seats_in_row": seats,
	})
	s.Require().Equal(http.StatusCreated, status, env.Message)
	s.decode(env, &created)
	hallID := created.ID

	status, env = s.do(http.MethodPost, "/api/movies", s.staffToken, map[string]any{
		"title": "Dune", "description": "Spice", "duration": 155,
	})
	s.Require().Equal(http.StatusCreated, status, env.Message)
	s.decode(env, &created)
	movieID := created.ID

	status, env = s.do(http.MethodPost, "/api/movie-sessions", s.staffToken, map[string]any{
		"show_time": showTime, "movie": movieID, "cinema_hall": hallID,
	})
	s.Require().Equal(http.StatusCreated, status, env.Message)
	s.decode(env, &created)
	return created.ID
}

func tickets(sessionID string, places ...[2]int) map[string]any {
	items := make([]map[string]any, 0, len(places))
	for _, p := range places {
		items = append(items, map[string]any{"row": p[0], "seat": p[1], "movie_session": sessionID})
	}
	return map[string]any{"tickets": items}
}
