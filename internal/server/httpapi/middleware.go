package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/labstack/echo/v4"
)

// usernameContextKey is the echo context key holding the authenticated
// username set by the auth middlewares.
const usernameContextKey = "auth_username"

// bearerToken extracts the token from "Authorization: Bearer <token>".
// An absent or malformed header yields an empty string.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(common.AuthHeaderName)
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerPrefix) {
		return ""
	}
	return parts[1]
}

// unauthorized writes the unified 401 response. The detail never reveals
// which check failed.
func unauthorized(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", common.BearerPrefix)
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate credentials"})
}

// requireUser validates the bearer token and stores the authenticated
// username in the request context.
func (s *Server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c)
		}

		username, err := s.users.ValidateSession(c.Request().Context(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Set(usernameContextKey, username)
		return next(c)
	}
}

// requireAdmin additionally checks the session against the configured admin
// identity. Non-admin sessions get the same 401 as invalid ones.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c)
		}

		username, err := s.admins.RequireAdmin(c.Request().Context(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Set(usernameContextKey, username)
		return next(c)
	}
}

// authenticatedUsername returns the username stored by the auth middlewares.
func authenticatedUsername(c echo.Context) string {
	if v, ok := c.Get(usernameContextKey).(string); ok {
		return v
	}
	return ""
}
