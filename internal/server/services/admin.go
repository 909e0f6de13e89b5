package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/dmitrijs2005/authd/internal/server/repositories/repomanager"
)

// SessionValidator is the slice of UserService the admin guard depends on.
type SessionValidator interface {
	ValidateSession(ctx context.Context, tokenString string) (string, error)
}

// AdminService layers the admin-privilege check on top of session validation
// and seeds the admin account at startup. Admin-ness is a configuration fact:
// the guard matches the session's identity against the configured admin
// username rather than reading the stored is_admin flag.
type AdminService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	sessions      SessionValidator
	hasher        auth.PasswordHasher
	adminUsername string
	adminPassword string
}

// NewAdminService constructs an AdminService for the configured admin identity.
func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, sessions SessionValidator, hasher auth.PasswordHasher, adminUsername, adminPassword string) *AdminService {
	return &AdminService{
		db:            db,
		repos:         m,
		sessions:      sessions,
		hasher:        hasher,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// RequireAdmin validates the session and returns the username if and only if
// it is the configured admin. Any other valid session yields
// common.ErrNotAdmin.
func (s *AdminService) RequireAdmin(ctx context.Context, tokenString string) (string, error) {
	username, err := s.sessions.ValidateSession(ctx, tokenString)
	if err != nil {
		return "", err
	}

	if username != s.adminUsername {
		return "", common.ErrNotAdmin
	}

	return username, nil
}

// Bootstrap ensures the admin record exists: a missing admin is inserted with
// a hashed password and is_admin=true, a present one is left untouched. The
// insert is conditional at the store level, so concurrent startups are safe.
// Reports whether a record was created.
func (s *AdminService) Bootstrap(ctx context.Context) (bool, error) {
	repo := s.repos.Users(s.db)

	_, err := repo.GetByUsername(ctx, s.adminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return false, fmt.Errorf("error looking up admin user: %w", err)
	}

	hash, err := s.hasher.Hash(s.adminPassword)
	if err != nil {
		return false, fmt.Errorf("error hashing admin password: %w", err)
	}

	admin := &models.User{
		Username:     s.adminUsername,
		PasswordHash: hash,
		IsAdmin:      true,
	}

	created, err := repo.CreateIfAbsent(ctx, admin)
	if err != nil {
		return false, fmt.Errorf("error creating admin user: %w", err)
	}

	return created, nil
}
