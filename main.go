// main.go
package main

import (
	"context"
	"log"

	"soccer-school/cmd"
	"soccer-school/internal/data/repository"
	"soccer-school/internal/queue"
	"soccer-school/internal/usecase"
	"soccer-school/internal/wire"
	"soccer-school/pkg/database"
	"soccer-school/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Response cache is optional
	rdb := database.InitRedis(config.Redis, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Notification delivery: broker when reachable, direct DB write
	// otherwise
	var notifier usecase.Notifier
	publisher, err := queue.NewPublisher(config.Queue.URL, config.Queue.Exchange, logger)
	if err != nil {
		logger.Warn("Message broker unavailable, falling back to direct notifications", zap.Error(err))
		notifier = queue.NewDBNotifier(repos.Notification, logger)
	} else {
		defer publisher.Close()
		notifier = publisher

		consumer := queue.NewConsumer(config.Queue.URL, config.Queue.Exchange, repos.Notification, logger)
		go consumer.Run(context.Background())
	}

	// Wire all dependencies
	service := usecase.NewService(repos, config, notifier, logger)
	app := wire.Wiring(service, config, rdb, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
