package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agrovia/farm-api/internal/api"
	"github.com/agrovia/farm-api/internal/config"
	"github.com/agrovia/farm-api/internal/notify"
	"github.com/agrovia/farm-api/internal/repository/postgres"
	"github.com/agrovia/farm-api/internal/repository/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting farm API server")

	// Initialize database
	db, err := postgres.NewDB(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// The state registry is loaded once; a missing state is a fatal
	// misconfiguration, not something to limp along with.
	registry, err := postgres.LoadStateRegistry(context.Background(), db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load state registry")
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Push dispatcher is optional: without a broker URL the API still
	// persists notifications, it just never pushes them.
	var dispatcher notify.Dispatcher = notify.NopDispatcher{}
	if cfg.Push.URL != "" {
		amqpDispatcher, err := notify.NewAMQPDispatcher(cfg.Push.URL, cfg.Push.Queue)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to push broker")
		}
		defer amqpDispatcher.Close()
		dispatcher = amqpDispatcher
	} else {
		log.Warn().Msg("no push broker configured, notifications will not be pushed")
	}

	router := api.NewRouter(cfg, db, redisClient, registry, dispatcher)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
