package rest

import (
	"net/http"

	"peersphere-backend/application/commands/bus"
	querybus "peersphere-backend/application/queries/bus"
	"peersphere-backend/infrastructure/config"
	"peersphere-backend/interfaces/http/rest/handlers"
	"peersphere-backend/interfaces/http/rest/middleware"
	"peersphere-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Writes that award or remove reputation get a tighter per-user limit
// than the general request allowance.
const writesPerMinute = 30

// Router creates and configures the HTTP router
type Router struct {
	commandBus  *bus.CommandBus
	queryBus    *querybus.QueryBus
	validator   *auth.JWTValidator
	userLimiter auth.RateLimiter
	cfg         *config.Config
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	validator *auth.JWTValidator,
	userLimiter auth.RateLimiter,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus:  commandBus,
		queryBus:    queryBus,
		validator:   validator,
		userLimiter: userLimiter,
		cfg:         cfg,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.peersphere.dev"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	questionHandler := handlers.NewQuestionHandler(rt.commandBus, rt.queryBus, rt.logger)
	answerHandler := handlers.NewAnswerHandler(rt.commandBus, rt.queryBus, rt.logger)
	userHandler := handlers.NewUserHandler(rt.commandBus, rt.queryBus, rt.logger)

	authenticate := middleware.Authenticate(rt.validator, rt.userLimiter, rt.logger, rt.cfg.RateLimitPerMinute)
	throttleWrites := middleware.ThrottleWrites(auth.NewWriteThrottle(writesPerMinute))

	router.Route("/api/v1", func(r chi.Router) {
		// Public reads. A valid token still attaches the viewer so
		// responses can mark the caller's own votes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthenticate(rt.validator))

			r.Get("/questions", questionHandler.ListQuestions)
			r.Get("/questions/{questionID}", questionHandler.GetQuestion)
			r.Get("/questions/{questionID}/answers", answerHandler.ListAnswers)
			r.Get("/users/{userID}", userHandler.GetUser)
			r.Get("/users/{userID}/stats", userHandler.GetUserStats)
			r.Get("/leaderboard", userHandler.Leaderboard)
		})

		// Authenticated writes
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/questions", questionHandler.CreateQuestion)
			r.Post("/questions/{questionID}/comments", questionHandler.CommentQuestion)
			r.Post("/questions/{questionID}/answers", answerHandler.CreateAnswer)
			r.Post("/answers/{answerID}/comments", answerHandler.CommentAnswer)
			r.Post("/users/{userID}/follow", userHandler.FollowUser)
			r.Delete("/users/{userID}/follow", userHandler.UnfollowUser)

			// Reputation-bearing writes, throttled harder
			r.Group(func(r chi.Router) {
				r.Use(throttleWrites)

				r.Post("/questions/{questionID}/vote", questionHandler.VoteQuestion)
				r.Post("/answers/{answerID}/vote", answerHandler.VoteAnswer)
				r.Post("/answers/{answerID}/accept", answerHandler.AcceptAnswer)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
