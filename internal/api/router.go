package api

import (
	"net/http"

	"github.com/agrovia/farm-api/internal/api/handler"
	custommw "github.com/agrovia/farm-api/internal/api/middleware"
	"github.com/agrovia/farm-api/internal/config"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/insight"
	"github.com/agrovia/farm-api/internal/notify"
	"github.com/agrovia/farm-api/internal/repository/postgres"
	"github.com/agrovia/farm-api/internal/repository/redis"
	"github.com/agrovia/farm-api/internal/security"
	"github.com/agrovia/farm-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	db *postgres.DB,
	redisClient *redis.Client,
	registry *domain.StateRegistry,
	dispatcher notify.Dispatcher,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	farmRepo := postgres.NewFarmRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	membershipRepo := postgres.NewMembershipRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	plotRepo := postgres.NewPlotRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// Redis-backed pieces
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	roleCache := redis.NewRoleCache(redisClient)

	// Side effects
	coordinator := notify.NewCoordinator(registry, dispatcher, log.Logger)

	var analyzer service.ReportAnalyzer
	if cfg.Insight.GeminiAPIKey != "" {
		analyzer = insight.NewAnalyzer(cfg.Insight)
	} else {
		log.Warn().Msg("no insight API key configured, report analysis disabled")
	}

	// Services
	authz := service.NewAuthorizer(membershipRepo, roleRepo, registry)
	authService := service.NewAuthService(userRepo, jwtManager, registry)
	farmService := service.NewFarmService(farmRepo, roleRepo, authz, registry, db)
	invitationService := service.NewInvitationService(
		invitationRepo, userRepo, farmRepo, roleRepo, notificationRepo,
		authz, coordinator, registry, db,
	)
	collaboratorService := service.NewCollaboratorService(membershipRepo, roleRepo, authz, registry)
	plotService := service.NewPlotService(plotRepo, authz, registry)
	transactionService := service.NewTransactionService(transactionRepo, plotRepo, authz, registry)
	reportService := service.NewReportService(transactionRepo, plotRepo, farmRepo, authz, registry, analyzer, log.Logger)
	notificationService := service.NewNotificationService(notificationRepo)
	roleService := service.NewRoleService(roleRepo, roleCache, log.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	farmHandler := handler.NewFarmHandler(farmService)
	invitationHandler := handler.NewInvitationHandler(invitationService)
	collaboratorHandler := handler.NewCollaboratorHandler(collaboratorService)
	plotHandler := handler.NewPlotHandler(plotService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	roleHandler := handler.NewRoleHandler(roleService)

	authMiddleware := custommw.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := custommw.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/device-token", authHandler.UpdateDeviceToken)

			// Reference data
			r.Get("/roles", roleHandler.List)

			// Notification inbox
			r.Get("/notifications", notificationHandler.List)

			// Invitations
			r.Route("/invitations", func(r chi.Router) {
				r.Post("/", invitationHandler.Create)
				r.Post("/{invitationID}/respond", invitationHandler.Respond)
			})

			// Farms
			r.Route("/farms", func(r chi.Router) {
				r.Get("/", farmHandler.List)
				r.Post("/", farmHandler.Create)

				r.Route("/{farmID}", func(r chi.Router) {
					r.Use(custommw.FarmContext)

					r.Get("/", farmHandler.Get)

					r.Route("/collaborators", func(r chi.Router) {
						r.Get("/", collaboratorHandler.List)
						r.Patch("/role", collaboratorHandler.UpdateRole)
						r.Delete("/", collaboratorHandler.Remove)
					})

					r.Route("/plots", func(r chi.Router) {
						r.Get("/", plotHandler.List)
						r.Post("/", plotHandler.Create)
					})
				})
			})

			// Transactions
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", transactionHandler.Create)
				r.Delete("/{transactionID}", transactionHandler.Delete)
			})

			// Financial reports
			r.Post("/reports/financial", reportHandler.Generate)
		})
	})

	return r
}
