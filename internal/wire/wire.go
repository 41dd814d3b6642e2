package wire

import (
	"net/http"

	"cinema-api/internal/adaptor"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/events"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/middleware"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"go.uber.org/zap"
)

type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Deps are the collaborators built in main. Redis and Publisher are optional.
type Deps struct {
	Repo      *repository.Repository
	Config    *utils.Config
	Redis     *redis.Client
	Publisher events.Publisher
	Logger    *zap.Logger
}

func Wiring(deps Deps) *App {
	service := usecase.NewService(deps.Repo, deps.Config, deps.Publisher, deps.Logger)
	handler := adaptor.NewHandler(service, deps.Logger)

	router := setupRouter(handler, service, deps)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, service *usecase.Service, deps Deps) *chi.Mux {
	log := deps.Logger
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(deps.Config.App.CORSOrigins))
	r.Use(otelchi.Middleware(deps.Config.App.Name, otelchi.WithChiRoutes(r)))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method \""+r.Method+"\" not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	media := http.StripPrefix("/media/", http.FileServer(http.Dir(deps.Config.App.MediaDir)))
	r.Handle("/media/*", media)

	authn := middleware.AuthSession(service.Auth, log)

	r.Route("/api", func(api chi.Router) {
		wireAuth(api, handler.Auth, authn)

		api.Group(func(protected chi.Router) {
			protected.Use(authn)

			wireCatalog(protected, handler.Catalog, log)
			wireMovie(protected, handler.Movie, log)
			wireMovieSession(protected, handler.MovieSession, log)
			wireOrder(protected, handler.Order, deps)
		})
	})

	return r
}
