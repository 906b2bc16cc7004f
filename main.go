package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/repository"
	"github.com/theleywin/Backend-Blog/src/routes"
	"github.com/theleywin/Backend-Blog/src/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := lib.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger := lib.NewLogger(cfg)
	if cfg.UsesDevSecret() {
		logger.Warn().Msg("JWT_SECRET not set, using the development fallback secret")
	}

	ctx := context.Background()

	posts, users, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to open store")
	}
	defer closeStore()

	blobs, err := lib.NewDiskBlobStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to prepare upload directory")
	}

	tokens := lib.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	app := routes.NewApp(routes.Dependencies{
		Config: cfg,
		Log:    logger,
		Tokens: tokens,
		Auth:   services.NewAuthService(users, tokens),
		Posts:  services.NewPostService(posts, users, blobs),
	})

	go func() {
		logger.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("Server is running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("Failed to shutdown server")
	}
}

// openStore connects the configured document store and returns its repositories
func openStore(ctx context.Context, cfg lib.Config, logger zerolog.Logger) (repository.PostRepository, repository.UserRepository, func(), error) {
	switch cfg.StoreDriver {
	case lib.DriverSQLite:
		db, err := lib.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("Connected to SQLite")

		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewSQLitePostRepository(db), repository.NewSQLiteUserRepository(db), closeFn, nil

	default:
		client, db, err := lib.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := lib.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, nil, err
		}
		logger.Info().Str("database", cfg.MongoDatabase).Msg("Connected to MongoDB")

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}
		return repository.NewMongoPostRepository(db), repository.NewMongoUserRepository(db), closeFn, nil
	}
}
