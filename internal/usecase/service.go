package usecase

import (
	"cinema-api/internal/data/repository"
	"cinema-api/internal/events"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Catalog      CatalogService
	Movie        MovieService
	MovieSession MovieSessionService
	Order        OrderService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher events.Publisher, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Catalog:      NewCatalogService(repo, log),
		Movie:        NewMovieService(repo, config, log),
		MovieSession: NewMovieSessionService(repo, log),
		Order:        NewOrderService(repo, publisher, log),
	}
}
