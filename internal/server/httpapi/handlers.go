package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/labstack/echo/v4"
)

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Hello World"})
}

func (s *Server) register(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "username and password are required"})
	}

	ctx := c.Request().Context()

	token, err := s.users.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return c.JSON(http.StatusConflict, echo.Map{"detail": "Username already exists"})
		}
		s.logger.Error(ctx, "registration failed", "username", username, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}

	s.logger.Info(ctx, "Registered", "username", username)
	return c.JSON(http.StatusCreated, token)
}

func (s *Server) login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "username and password are required"})
	}

	ctx := c.Request().Context()

	token, err := s.users.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			c.Response().Header().Set("WWW-Authenticate", common.BearerPrefix)
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Incorrect username or password"})
		}
		s.logger.Error(ctx, "login failed", "username", username, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}

	return c.JSON(http.StatusOK, token)
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"username": authenticatedUsername(c)})
}

func (s *Server) adminMe(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Admin user authenticated successfully"})
}

func (s *Server) listUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing users failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}

	return c.JSON(http.StatusOK, users)
}

func (s *Server) deleteUser(c echo.Context) error {
	username := c.Param("username")
	ctx := c.Request().Context()

	if err := s.users.DeleteUser(ctx, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "User not found"})
		}
		s.logger.Error(ctx, "deleting user failed", "username", username, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
	}

	s.logger.Info(ctx, "User deleted", "username", username)
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
