package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/handler"
	postgresRepo "github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/repository/postgres"
	redisRepo "github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/repository/redis"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/auth"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/config"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/logger"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/metrics"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/postgres"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/redis"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "pokerpal"})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	membershipRepo := postgresRepo.NewMembershipRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	tournamentRepo := postgresRepo.NewTournamentRepository(pool)
	registrationRepo := postgresRepo.NewRegistrationRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	confirmationStore := redisRepo.NewConfirmationStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, membershipRepo, transactionRepo, idGen).
		WithRetrier(postgresRepo.NewRetrier(appLogger)).
		WithMetrics(appMetrics)
	membershipUC := usecase.NewMembershipUseCase(membershipRepo, idGen).WithMetrics(appMetrics)
	pointsUC := usecase.NewPointsUseCase(ledgerUC)
	tournamentUC := usecase.NewTournamentUseCase(txManager, tournamentRepo, registrationRepo, ledgerUC, pointsUC, idGen).
		WithMetrics(appMetrics).
		WithLogger(appLogger)
	assistantUC := usecase.NewAssistantUseCase(membershipUC, ledgerUC, tournamentUC, pointsUC, confirmationStore).
		WithMetrics(appMetrics)

	// Initialize handlers
	membershipHandler := handler.NewMembershipHandler(membershipUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, pointsUC)
	tournamentHandler := handler.NewTournamentHandler(tournamentUC)
	assistantHandler := handler.NewAssistantHandler(assistantUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MembershipHandler: membershipHandler,
		LedgerHandler:     ledgerHandler,
		TournamentHandler: tournamentHandler,
		AssistantHandler:  assistantHandler,
		HealthHandler:     healthHandler,
		JWTManager:        jwtManager,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		Metrics:           appMetrics,
		Logger:            appLogger,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
	})

	// Start the lifecycle sweeper
	sweeper := worker.NewSweeper(tournamentUC, cfg.SweepInterval, appLogger)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start sweeper")
	}
	defer sweeper.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
