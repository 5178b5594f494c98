package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/handler"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/middleware"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/auth"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/metrics"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/operation"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	MembershipHandler *handler.MembershipHandler
	LedgerHandler     *handler.LedgerHandler
	TournamentHandler *handler.TournamentHandler
	AssistantHandler  *handler.AssistantHandler
	HealthHandler     *handler.HealthHandler

	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger

	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Wrap)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		if cfg.Metrics != nil {
			limiter = limiter.WithMetrics(cfg.Metrics)
		}
		r.Use(limiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Assistant
		r.Post("/assistant", cfg.AssistantHandler.Handle)

		// Memberships
		r.Route("/memberships", func(r chi.Router) {
			r.With(middleware.RequireOperation(operation.OpCreateMember)).
				Post("/", cfg.MembershipHandler.Create)
			r.With(middleware.RequireOperation(operation.OpListMembers)).
				Get("/", cfg.MembershipHandler.List)
			r.Get("/me", cfg.MembershipHandler.Me)

			r.Route("/{id}", func(r chi.Router) {
				r.With(middleware.RequireOperation(operation.OpListMembers)).
					Get("/", cfg.MembershipHandler.Get)
				r.With(middleware.RequireOperation(operation.OpChangeRole)).
					Put("/role", cfg.MembershipHandler.ChangeRole)

				r.With(middleware.RequireOperation(operation.OpDeposit)).
					Post("/deposit", cfg.LedgerHandler.Deposit)
				r.With(middleware.RequireOperation(operation.OpWithdraw)).
					Post("/withdraw", cfg.LedgerHandler.Withdraw)
				r.With(middleware.RequireOperation(operation.OpAdjustBalance)).
					Post("/adjust", cfg.LedgerHandler.Adjust)

				r.With(middleware.RequireOperation(operation.OpAwardPoints)).
					Post("/points/award", cfg.LedgerHandler.AwardPoints)
				r.With(middleware.RequireOperation(operation.OpRedeemPoints)).
					Post("/points/redeem", cfg.LedgerHandler.RedeemPoints)

				r.With(middleware.RequireOperation(operation.OpListTransactions)).
					Get("/transactions", cfg.LedgerHandler.ListTransactions)
			})
		})

		// Transactions
		r.With(middleware.RequireOperation(operation.OpListTransactions)).
			Get("/transactions/{reference}", cfg.LedgerHandler.GetTransaction)

		// Tournaments
		r.Route("/tournaments", func(r chi.Router) {
			r.With(middleware.RequireOperation(operation.OpCreateTournament)).
				Post("/", cfg.TournamentHandler.Create)
			r.With(middleware.RequireOperation(operation.OpListTournaments)).
				Get("/", cfg.TournamentHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.With(middleware.RequireOperation(operation.OpGetTournament)).
					Get("/", cfg.TournamentHandler.Get)
				r.With(middleware.RequireOperation(operation.OpRegisterTournament)).
					Post("/register", cfg.TournamentHandler.Register)
				r.With(middleware.RequireOperation(operation.OpCancelRegistration)).
					Delete("/registration", cfg.TournamentHandler.CancelRegistration)
				r.With(middleware.RequireOperation(operation.OpCancelTournament)).
					Post("/cancel", cfg.TournamentHandler.Cancel)
				r.With(middleware.RequireOperation(operation.OpListMembers)).
					Get("/registrations", cfg.TournamentHandler.ListRegistrations)
			})
		})
	})

	return r
}
