// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, session validation, and the
// user listing/deletion operations exposed to the admin surface.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/dbx"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/dmitrijs2005/authd/internal/server/repositories/repomanager"
)

// dummyPasswordHash is verified against when a user does not exist, so a
// login for an unknown username costs the same as one with a wrong password.
// It is a syntactically valid argon2id hash that matches no password.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// UserService provides the authentication core:
// - Register: uniqueness check, hash, store, mint a token
// - Login: lookup, hash verify, mint a token
// - ValidateSession: token verify plus a directory re-check
type UserService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher auth.PasswordHasher
	tokens *auth.TokenService
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		db:     db,
		repos:  m,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new user and returns a token whose subject is the
// username. A taken username yields common.ErrDuplicateUsername; the unique
// index backstops the check-then-insert race, so concurrent registrations
// for the same name fail the same way.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.Token, error) {

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		_, err := repo.GetByUsername(ctx, username)
		if err == nil {
			return common.ErrDuplicateUsername
		}
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("error checking username: %w", err)
		}

		user := &models.User{Username: username, PasswordHash: hash}
		if _, err := repo.Create(ctx, user); err != nil {
			return err
		}
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issueToken(username)
}

// Login verifies the credential pair and returns a token whose subject is
// the username. Unknown users and wrong passwords both yield
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Burn the same hashing cost as a real verification so response
			// time does not reveal whether the username exists.
			_, _ = s.hasher.Verify(password, dummyPasswordHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueToken(username)
}

// ValidateSession verifies the token and re-checks that its subject still
// exists in the directory; tokens of deleted users are rejected. Returns the
// authenticated username.
func (s *UserService) ValidateSession(ctx context.Context, tokenString string) (string, error) {
	subject, err := s.tokens.Verify(tokenString)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	repo := s.repos.Users(s.db)
	if _, err := repo.GetByUsername(ctx, subject); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", common.ErrInternal
	}

	return subject, nil
}

// ListUsers returns every stored record, password hashes excluded.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserInfo, error) {
	repo := s.repos.Users(s.db)

	users, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	result := make([]models.UserInfo, 0, len(users))
	for _, u := range users {
		result = append(result, u.Info())
	}
	return result, nil
}

// DeleteUser removes the record for username, or returns common.ErrNotFound.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	repo := s.repos.Users(s.db)
	return repo.Delete(ctx, username)
}

func (s *UserService) issueToken(username string) (*models.Token, error) {
	accessToken, err := s.tokens.Issue(username)
	if err != nil {
		return nil, common.ErrInternal
	}
	return models.NewBearerToken(accessToken), nil
}
