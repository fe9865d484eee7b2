package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tdnghia98/Caracal/config"
	"github.com/tdnghia98/Caracal/internal/apperror"
)

func newService(baseURL string) Service {
	cfg := &config.Config{}
	cfg.Auth.BaseURL = baseURL
	cfg.Auth.ServiceKey = "service-key"
	return NewHTTPService(cfg)
}

func TestGetCallerIdentity(t *testing.T) {
	userID := uuid.NewString()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/user", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(Identity{ID: userID, Email: "caller@school.test"})
	}))
	defer srv.Close()

	svc := newService(srv.URL)

	identity, err := svc.GetCallerIdentity(context.Background(), "good-token")
	require.NoError(t, err)
	require.Equal(t, userID, identity.ID)
	require.Equal(t, "caller@school.test", identity.Email)

	_, err = svc.GetCallerIdentity(context.Background(), "bad-token")
	require.ErrorIs(t, err, apperror.ErrNotAuthenticated)
}

func TestGetCallerIdentityEmptyTokenSkipsNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	_, err := svc.GetCallerIdentity(context.Background(), "")
	require.ErrorIs(t, err, apperror.ErrNotAuthenticated)
	require.Zero(t, calls)
}

func TestCreateIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "new@school.test", payload["email"])
		meta, ok := payload["user_metadata"].(map[string]interface{})
		require.True(t, ok)
		require.Equal(t, "teacher", meta["role"])

		json.NewEncoder(w).Encode(Identity{ID: uuid.NewString(), Email: "new@school.test"})
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	identity, err := svc.CreateIdentity(context.Background(), "new@school.test", "temp-password", Metadata{"role": "teacher"})
	require.NoError(t, err)
	require.NotEmpty(t, identity.ID)
	require.Equal(t, "new@school.test", identity.Email)
}

func TestCreateIdentityRejectionIsStoreWriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"msg":"email already registered"}`))
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	_, err := svc.CreateIdentity(context.Background(), "dup@school.test", "temp-password", nil)

	var swe *apperror.StoreWriteError
	require.ErrorAs(t, err, &swe)
	require.Equal(t, "create identity", swe.Op)
	require.Contains(t, swe.Err.Error(), "email already registered")
}

func TestListIdentities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []Identity{
				{ID: uuid.NewString(), Email: "a@school.test"},
				{ID: uuid.NewString(), Email: "b@school.test"},
			},
		})
	}))
	defer srv.Close()

	svc := newService(srv.URL)
	identities, err := svc.ListIdentities(context.Background())
	require.NoError(t, err)
	require.Len(t, identities, 2)
}
