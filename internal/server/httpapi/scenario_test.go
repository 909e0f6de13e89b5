package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/dbx"
	"github.com/dmitrijs2005/authd/internal/server/auth"
	"github.com/dmitrijs2005/authd/internal/server/models"
	usersrepo "github.com/dmitrijs2005/authd/internal/server/repositories/users"
	"github.com/dmitrijs2005/authd/internal/server/services"
	"github.com/stretchr/testify/require"
)

// mapRepo is a minimal in-memory users.Repository for end-to-end flows.
type mapRepo struct {
	users map[string]*models.User
}

func (r *mapRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := r.users[u.Username]; ok {
		return nil, common.ErrDuplicateUsername
	}
	u.ID = "id-" + u.Username
	r.users[u.Username] = u
	return u, nil
}

func (r *mapRepo) CreateIfAbsent(ctx context.Context, u *models.User) (bool, error) {
	if _, ok := r.users[u.Username]; ok {
		return false, nil
	}
	u.ID = "id-" + u.Username
	r.users[u.Username] = u
	return true, nil
}

func (r *mapRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *mapRepo) List(ctx context.Context) ([]*models.User, error) {
	var result []*models.User
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, nil
}

func (r *mapRepo) Delete(ctx context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

type mapRepoManager struct {
	repo *mapRepo
}

func (m *mapRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *mapRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.repo }

// TestFullScenario drives the documented happy path and its 401s through the
// real services stacked behind the HTTP layer:
// register alice -> login alice -> bad password -> admin listing.
func TestFullScenario(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.MatchExpectationsInOrder(false)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &mapRepoManager{repo: &mapRepo{users: map[string]*models.User{}}}
	hasher := auth.NewArgon2idHasher()
	tokens, err := auth.NewTokenService("scenario-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	users := services.NewUserService(db, rm, hasher, tokens)
	admins := services.NewAdminService(db, rm, users, hasher, "admin", "admin-pw")

	created, err := admins.Bootstrap(context.Background())
	require.NoError(t, err)
	require.True(t, created)

	e := newTestEcho(users, admins)

	// Register alice.
	rec := doForm(e, "/register", credentials("alice", "pw1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Login alice and validate the token subject via /users/me.
	rec = doForm(e, "/login", credentials("alice", "pw1"))
	require.Equal(t, http.StatusOK, rec.Code)
	aliceToken := decodeBody(t, rec)["access_token"].(string)

	rec = doAuthed(e, http.MethodGet, "/users/me", aliceToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", decodeBody(t, rec)["username"])

	// Wrong password is a 401.
	rec = doForm(e, "/login", credentials("alice", "wrong"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Alice cannot list users.
	rec = doAuthed(e, http.MethodGet, "/admin/users", aliceToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// The bootstrap admin can, and sees alice.
	rec = doForm(e, "/login", credentials("admin", "admin-pw"))
	require.Equal(t, http.StatusOK, rec.Code)
	adminToken := decodeBody(t, rec)["access_token"].(string)

	rec = doAuthed(e, http.MethodGet, "/admin/users", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.UserInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	names := make(map[string]bool, len(list))
	for _, u := range list {
		names[u.Username] = true
	}
	require.True(t, names["alice"] && names["admin"])

	// Deleting alice revokes her still-unexpired token.
	rec = doAuthed(e, http.MethodDelete, "/admin/users/alice", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doAuthed(e, http.MethodGet, "/users/me", aliceToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
