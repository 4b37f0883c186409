package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/UserHive/go-user-server/internal/auth"
	"github.com/UserHive/go-user-server/internal/config"
	"github.com/UserHive/go-user-server/internal/log"
	"github.com/UserHive/go-user-server/internal/models/user"
	"github.com/UserHive/go-user-server/internal/services"
	"github.com/UserHive/go-user-server/internal/web"
)

func main() {
	// Load environment variables from .env file. A missing file is fine in
	// environments that configure through the process environment directly.
	_ = godotenv.Load()

	logger, err := log.NewLogger(true)
	if err != nil {
		panic(fmt.Sprintf("Error creating logger: %s", err))
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Error loading configuration:", err)
	}

	ctx := context.Background()

	// Create a MongoDB client
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Error creating MongoDB client:", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("Error reaching MongoDB:", err)
	}

	userManager, err := user.NewUserManager(ctx, mongoClient, logger)
	if err != nil {
		logger.Fatal("Error initializing user manager:", err)
	}

	// Token and hash components get their configuration handed over
	// explicitly; nothing reads the secret from the environment later.
	tokens := auth.NewTokenService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// Lifecycle events are optional; without a broker URL the service runs
	// without them.
	var events *services.EventService
	if cfg.AMQPURL != "" {
		events, err = services.NewEventService(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatal("Error initializing event service:", err)
		}
		defer events.Close()
	}

	userService := services.NewUserService(userManager, hasher, tokens, events, logger)
	server := web.NewWebServer(tokens, userService, cfg.AllowOrigin, logger)

	fmt.Println("Starting server...")

	if err := server.Run(cfg.Host, cfg.Port); err != nil {
		logger.Fatal("Error starting web server:", err)
	}
}
