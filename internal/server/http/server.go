// Package http exposes the service over a fiber HTTP app: routing, cookie
// transport for the token pair, auth middleware, and error mapping.
package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skilltrackhq/backend/internal/logging"
	"github.com/skilltrackhq/backend/internal/server/services"
)

// shutdownTimeout bounds how long in-flight requests may run during shutdown.
const shutdownTimeout = 5 * time.Second

type Server struct {
	app    *fiber.App
	addr   string
	logger logging.Logger
}

// NewServer wires the fiber app with all routes and the central error
// handler.
func NewServer(addr string, l logging.Logger, accounts *services.AccountService, sessions *services.SessionService, users *services.UserService) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	s := &Server{
		app:    app,
		addr:   addr,
		logger: l.With("module", "http_server"),
	}

	authHandler := &AuthHandler{accounts: accounts, sessions: sessions}
	userHandler := &UserHandler{users: users}
	requireAuth := authMiddleware(sessions)

	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/change-password", requireAuth, authHandler.ChangePassword)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/resend-code", authHandler.ResendCode)
	auth.Delete("/delete-account", requireAuth, authHandler.DeleteAccount)
	auth.Post("/init-reset-password", authHandler.InitPasswordReset)
	auth.Post("/forget-password", authHandler.CompletePasswordReset)
	auth.Post("/logout", requireAuth, authHandler.Logout)
	auth.Post("/refresh-token", authHandler.RefreshToken)

	user := app.Group("/user")
	user.Get("/info", requireAuth, userHandler.Info)
	user.Get("/leaderboard", userHandler.Leaderboard)

	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the listener and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	return s.app.Listen(s.addr)
}
