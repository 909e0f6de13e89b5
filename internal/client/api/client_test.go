package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServerStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	issueToken := func(w http.ResponseWriter, status int, token string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(models.NewBearerToken(token))
	}

	reject := func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}

	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("username") == "taken" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Username already exists"})
			return
		}
		issueToken(w, http.StatusCreated, "token-"+r.FormValue("username"))
	})

	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("password") != "pw" {
			reject(w)
			return
		}
		issueToken(w, http.StatusOK, "token-"+r.FormValue("username"))
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AuthHeaderName) != common.BearerPrefix+" token-alice" {
			reject(w)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"username": "alice"})
	})

	mux.HandleFunc("GET /admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AuthHeaderName) != common.BearerPrefix+" token-admin" {
			reject(w)
			return
		}
		json.NewEncoder(w).Encode([]models.UserInfo{
			{ID: "1", Username: "admin", IsAdmin: true},
			{ID: "2", Username: "alice"},
		})
	})

	mux.HandleFunc("DELETE /admin/users/{username}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AuthHeaderName) != common.BearerPrefix+" token-admin" {
			reject(w)
			return
		}
		if r.PathValue("username") == "ghost" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "User not found"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "User deleted successfully"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRegisterStoresToken(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	require.False(t, c.IsAuthenticated())
	require.NoError(t, c.Register(context.Background(), "alice", []byte("pw")))
	assert.True(t, c.IsAuthenticated())

	username, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestClientRegisterDuplicate(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	err := c.Register(context.Background(), "taken", []byte("pw"))
	require.EqualError(t, err, "Username already exists")
	assert.False(t, c.IsAuthenticated())
}

func TestClientLoginWrongPassword(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	err := c.Login(context.Background(), "alice", []byte("nope"))
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientLogout(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	require.NoError(t, c.Login(context.Background(), "alice", []byte("pw")))
	c.Logout()
	require.False(t, c.IsAuthenticated())

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientListUsers(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	require.NoError(t, c.Login(context.Background(), "admin", []byte("pw")))

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.True(t, users[0].IsAdmin)
}

func TestClientListUsersRequiresAdmin(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	require.NoError(t, c.Login(context.Background(), "alice", []byte("pw")))

	_, err := c.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClientDeleteUser(t *testing.T) {
	srv := newAuthServerStub(t)
	c := NewClient(srv.URL)

	require.NoError(t, c.Login(context.Background(), "admin", []byte("pw")))

	assert.NoError(t, c.DeleteUser(context.Background(), "alice"))
	assert.EqualError(t, c.DeleteUser(context.Background(), "ghost"), "User not found")
}

func TestClientServerUnavailable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")

	err := c.Login(context.Background(), "alice", []byte("pw"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
