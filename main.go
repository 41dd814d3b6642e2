package main

import (
	"context"
	"flag"
	"log"
	"time"

	"cinema-api/cmd"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/events"
	"cinema-api/internal/wire"
	"cinema-api/pkg/database"
	"cinema-api/pkg/telemetry"
	"cinema-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	promote := flag.String("promote-staff", "", "grant staff rights to the user with this email and exit")
	flag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	shutdownTracing, err := telemetry.InitTracing(ctx, config.App.Name, config.Telemetry.Endpoint, logger)
	if err != nil {
		logger.Fatal("Failed to init tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(config.Database.DSN()); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)

	if *promote != "" {
		if err := cmd.PromoteStaff(ctx, repos.User, *promote, logger); err != nil {
			logger.Fatal("Failed to promote user", zap.Error(err))
		}
		return
	}

	rdb, err := database.InitRedis(ctx, config.Redis)
	if err != nil {
		// the rate limiter is optional, orders still go through without it
		logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var publisher events.Publisher = events.Nop{}
	if config.Broker.URL != "" {
		publisher = events.NewRabbitPublisher(config.Broker, logger)
	}
	defer publisher.Close()

	app := wire.Wiring(wire.Deps{
		Repo:      repos,
		Config:    config,
		Redis:     rdb,
		Publisher: publisher,
		Logger:    logger,
	})

	go cmd.CleanTokens(ctx, repos.Token, time.Hour, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
