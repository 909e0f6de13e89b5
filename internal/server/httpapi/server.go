// Package httpapi exposes the authentication core over HTTP: registration,
// login/token issuance, the authenticated user endpoint, and the admin-only
// user management surface.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authd/internal/logging"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// UserService is the slice of the authentication core the HTTP layer uses.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.Token, error)
	Login(ctx context.Context, username, password string) (*models.Token, error)
	ValidateSession(ctx context.Context, tokenString string) (string, error)
	ListUsers(ctx context.Context) ([]models.UserInfo, error)
	DeleteUser(ctx context.Context, username string) error
}

// AdminService guards the admin-only routes.
type AdminService interface {
	RequireAdmin(ctx context.Context, tokenString string) (string, error)
}

type Server struct {
	address     string
	environment string
	logger      logging.Logger
	users       UserService
	admins      AdminService
}

func NewServer(address, environment string, l logging.Logger, us UserService, as AdminService) *Server {
	return &Server{
		address:     address,
		environment: environment,
		logger:      l.With("module", "httpapi"),
		users:       us,
		admins:      as,
	}
}

// newEcho builds the route table. Separated from Run so tests can drive the
// handlers through httptest without binding a socket.
func (s *Server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())

	if s.environment == "dev" {
		s.logger.Warn(context.Background(), "Running in development mode - allowing CORS for all origins")
		e.Use(echomw.CORS())
	}

	e.GET("/", s.root)
	e.POST("/register", s.register)
	e.POST("/login", s.login)
	// OAuth2-style alias of /login.
	e.POST("/token", s.login)

	users := e.Group("/users", s.requireUser)
	users.GET("/me", s.me)

	admin := e.Group("/admin", s.requireAdmin)
	admin.GET("/me", s.adminMe)
	admin.GET("/users", s.listUsers)
	admin.DELETE("/users/:username", s.deleteUser)

	return e
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
