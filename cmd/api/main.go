package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cineplex/reservation-system/internal/api"
	"github.com/cineplex/reservation-system/internal/core/roles"
	"github.com/cineplex/reservation-system/internal/core/token"
	"github.com/cineplex/reservation-system/internal/infrastructure/config"
	mongodb "github.com/cineplex/reservation-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cineplex/reservation-system/internal/infrastructure/db/redis"
	"github.com/cineplex/reservation-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// The RSA key pair is mandatory: refuse to start without it rather
	// than discover the problem on the first login.
	privPEM, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.JWT.PrivateKeyPath).Msg("read private key")
	}
	pubPEM, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.JWT.PublicKeyPath).Msg("read public key")
	}
	codec, err := token.NewCodec(privPEM, pubPEM, cfg.JWT.Algorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("build token codec")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	// Roles are loaded once at startup; an empty roles collection means
	// the database was never seeded, which is fatal.
	registry, err := roles.Load(ctx, mongodb.NewRoleRepository(db))
	if err != nil {
		log.Fatal().Err(err).Msg("load role registry")
	}

	e := api.NewRouter(db, rdb, registry, codec, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewMovieRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewReservationRepository(db).EnsureIndexes(ctx)
}
