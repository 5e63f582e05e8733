package main

import (
	"context"
	"log"
	"time"

	"credential-auth/config"
	"credential-auth/internal/handler"
	"credential-auth/internal/redis"
	"credential-auth/internal/repository"
	"credential-auth/internal/server"
	"credential-auth/internal/services"
	"credential-auth/pkg/database"
	"credential-auth/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		l.Logger.Fatal(err.Error())
	}
	defer database.Close(db)

	if err := repository.InitSchema(db); err != nil {
		l.Logger.Fatal(err.Error())
	}

	var revocations services.RevocationStore = services.NoopRevocationStore{}
	if cfg.RedisEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := redis.Connect(ctx, redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			l.Logger.Fatal(err.Error())
		}
		defer client.Close()
		revocations = redis.NewRevocationStore(client)
		l.Infof("Session revocation backed by redis at %s:%s", cfg.RedisHost, cfg.RedisPort)
	}

	opts := services.NewAuthOptions(cfg)
	sessions := services.NewSessionManager(opts, revocations)
	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		services.NewArgon2idHasher(),
		sessions,
		l,
	)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth: handler.NewAuthHandler(authService, opts, handler.CookieConfig{
			Name:   cfg.SessionCookieName,
			Secure: cfg.SessionCookieSecure,
		}),
	}, authService, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	if err := srv.Start(); err != nil {
		l.Errorf("Server stopped with error: %v", err)
	}
}
