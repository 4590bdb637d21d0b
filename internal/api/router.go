package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matchwise/backend/internal/auth"
	"github.com/matchwise/backend/internal/domain"
	"github.com/matchwise/backend/internal/middleware"
	"go.uber.org/zap"
)

// Router holds all handlers and creates the chi router.
type Router struct {
	authHandler    *AuthHandler
	profileHandler *ProfileHandler
	requestHandler *RequestHandler
	userHandler    *UserHandler
	healthHandler  *HealthHandler
	jwtManager     *auth.JWTManager
	revoker        domain.TokenRevoker
	logger         *zap.Logger
}

// NewRouter creates a new router.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	requestHandler *RequestHandler,
	userHandler *UserHandler,
	healthHandler *HealthHandler,
	jwtManager *auth.JWTManager,
	revoker domain.TokenRevoker,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		requestHandler: requestHandler,
		userHandler:    userHandler,
		healthHandler:  healthHandler,
		jwtManager:     jwtManager,
		revoker:        revoker,
		logger:         logger,
	}
}

// Setup configures and returns the chi router.
func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware())
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", rt.healthHandler.Health)

	// Auth routes (no auth required)
	r.Post("/signup", rt.authHandler.Signup)
	r.Post("/login", rt.authHandler.Login)
	r.Post("/refresh", rt.authHandler.Refresh)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(rt.jwtManager, rt.revoker))

		r.Post("/logout", rt.authHandler.Logout)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/view", rt.profileHandler.View)
			r.Patch("/edit", rt.profileHandler.Edit)
			r.Patch("/password", rt.profileHandler.ChangePassword)
		})

		r.Route("/request", func(r chi.Router) {
			r.Post("/send/interested/{toUserId}", rt.requestHandler.SendInterest)
			r.Post("/send/ignored/{toUserId}", rt.requestHandler.SendIgnore)
			r.Post("/review/accepted/{requestId}", rt.requestHandler.Accept)
			r.Post("/review/rejected/{requestId}", rt.requestHandler.Reject)
			r.Post("/block/{toUserId}", rt.requestHandler.Block)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/feed", rt.userHandler.Feed)
			r.Get("/connections", rt.userHandler.Connections)
			r.Get("/requests", rt.userHandler.Requests)
		})
	})

	return r
}
