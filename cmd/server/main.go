// @title       EventSphere Registration API
// @version     1.0
// @description Event management and participant registration with QR-coded tickets.
// @BasePath    /api
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/api"
	"github.com/eventsphere/registration-api/internal/core/ports"
	"github.com/eventsphere/registration-api/internal/core/service"
	mongodb "github.com/eventsphere/registration-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eventsphere/registration-api/internal/infrastructure/db/redis"
	"github.com/eventsphere/registration-api/internal/infrastructure/http/handlers"
	"github.com/eventsphere/registration-api/internal/infrastructure/qrcode"
	"github.com/eventsphere/registration-api/internal/infrastructure/queue"
	"github.com/eventsphere/registration-api/internal/pkg/config"
	"github.com/eventsphere/registration-api/pkg/logger"
)

const serviceName = "registration-api"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	var tx ports.Transactor
	if cfg.Mongo.Transactions {
		tx = mongodb.NewTransactor(mongoClient)
		log.Info().Msg("mongo transactions enabled")
	}

	var (
		lock        ports.RegistrationLock
		redisPinger handlers.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("redis close failed")
			}
		}()
		lock = redisdb.NewRegistrationLock(redisClient, cfg.Redis.LockTTL)
		redisPinger = handlers.RedisPinger(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("registration lock enabled")
	}

	activity := queue.NewActivityDispatcher(cfg.ActivityWorkers, mongodb.NewActivityRepository(db), logger.Component("activity"))
	activity.Start(context.Background())
	defer activity.Stop()

	events := mongodb.NewEventRepository(db)
	registrations := mongodb.NewRegistrationRepository(db)

	authSvc := service.NewAuthService(mongodb.NewAuthRepository(db), cfg.JWTSecret, cfg.TokenTTL, nil)
	eventSvc := service.NewEventService(events, registrations, activity, tx, nil, logger.Component("events"))
	registrationSvc := service.NewRegistrationService(service.RegistrationDeps{
		Events:        events,
		Registrations: registrations,
		Activity:      activity,
		Encoder:       qrcode.NewEncoder(cfg.QRSize),
		Lock:          lock,
		Tx:            tx,
	}, logger.Component("registrations"))

	e := api.NewRouter(api.Dependencies{
		Log:           logger.Component("http"),
		JWTSecret:     cfg.JWTSecret,
		APIPrefix:     cfg.APIPrefix,
		CORSOrigins:   cfg.CORSOrigins,
		Auth:          authSvc,
		Events:        eventSvc,
		Registrations: registrationSvc,
		Mongo:         handlers.MongoPinger(mongoClient),
		Redis:         redisPinger,
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("prefix", cfg.APIPrefix).Msg("http server listening")
		srvErr <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	return shutdown(e.Shutdown, cfg.ShutdownTimeout, log)
}

func shutdown(fn func(context.Context) error, timeout time.Duration, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := fn(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("http server stopped")
	return nil
}
