// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// newTestRemoteStore builds an httpRemoteStore pointed at the test server.
func newTestRemoteStore(t *testing.T, serverURL string) *httpRemoteStore {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}

	a, err := NewHTTPRemoteStore(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRemoteStore)
}

func signedToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("test", userID, time.Hour, "key")
	require.NoError(t, err)
	return token.SignedString
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ── Construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: "https://sync.example.com/", want: "https://sync.example.com"},
		{raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRemoteStore_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteStore(config.ClientAdapter{}, logger.Nop())
	assert.Error(t, err)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	token := signedToken(t, 7)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var user models.User
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "alice", user.Login)

		w.Header().Set("Authorization", "Bearer "+token)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	session, err := a.Login(context.Background(), models.User{Login: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "alice", session.Login)
	assert.Equal(t, token, session.Token)
	assert.Equal(t, token, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "invalid login/password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid login/password")
	assert.Empty(t, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("login already exists"))
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice"})

	assert.ErrorIs(t, err, utils.ErrInvalidAuthorizationValue)
}

// ── Ping ─────────────────────────────────────────────────────────────────────

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	a := newTestRemoteStore(t, srv.URL)
	require.NoError(t, a.Ping(context.Background()))

	srv.Close()
	err := a.Ping(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsUnreachable(err))
}

// ── Records ──────────────────────────────────────────────────────────────────

func TestFindByLocalID_Success(t *testing.T) {
	want := models.RemoteRecord{ID: 5, Table: models.TableCategories, LocalID: "c-1", Payload: models.Payload{"name": "Food"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/records/categories/c-1", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = utils.WriteJSON(w, want, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	a.SetToken(" tok ")

	got, err := a.FindByLocalID(context.Background(), models.TableCategories, "c-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, "Food", got.Payload["name"])
}

func TestFindByLocalID_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "record not found", http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.FindByLocalID(context.Background(), models.TableCategories, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsUnreachable(err))
}

func TestInsert_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/records/transactions", r.URL.Path)

		var rec models.RemoteRecord
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		assert.Equal(t, "tx-1", rec.LocalID)
		assert.Equal(t, 12.5, rec.Payload["amount"])

		rec.ID = 99
		rec.ServerUpdatedAt = testTime
		_, _ = utils.WriteJSON(w, rec, http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	got, err := a.Insert(context.Background(), models.RemoteRecord{
		Table:     models.TableTransactions,
		LocalID:   "tx-1",
		Payload:   models.Payload{"amount": 12.5},
		UpdatedAt: testTime,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(99), got.ID)
	assert.True(t, testTime.Equal(got.ServerUpdatedAt))
}

func TestInsert_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "record already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Insert(context.Background(), models.RemoteRecord{Table: models.TableTransactions, LocalID: "tx-1"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/records/budgets/b-1", r.URL.Path)

		var rec models.RemoteRecord
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		rec.ID = 3
		_, _ = utils.WriteJSON(w, rec, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	got, err := a.Update(context.Background(), models.RemoteRecord{Table: models.TableBudgets, LocalID: "b-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestDelete_SendsTombstoneTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/records/categories/c-1", r.URL.Path)

		var body deleteRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, testTime.Equal(body.DeletedAt))

		_, _ = utils.WriteJSON(w, models.RemoteRecord{ID: 1, LocalID: "c-1", DeletedAt: &body.DeletedAt}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	got, err := a.Delete(context.Background(), models.TableCategories, "c-1", testTime)

	require.NoError(t, err)
	assert.True(t, got.IsDeleted())
}

func TestQuerySince(t *testing.T) {
	t.Run("with cursor", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/records/categories", r.URL.Path)
			assert.Equal(t, testTime.Format(time.RFC3339Nano), r.URL.Query().Get("since"))
			_, _ = utils.WriteJSON(w, []models.RemoteRecord{{ID: 1, LocalID: "a"}, {ID: 2, LocalID: "b"}}, http.StatusOK)
		}))
		defer srv.Close()

		a := newTestRemoteStore(t, srv.URL)
		since := testTime
		got, err := a.QuerySince(context.Background(), models.TableCategories, &since)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[1].LocalID)
	})

	t.Run("without cursor", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("since"))
			_, _ = w.Write([]byte("null"))
		}))
		defer srv.Close()

		a := newTestRemoteStore(t, srv.URL)
		got, err := a.QuerySince(context.Background(), models.TableCategories, nil)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		a := newTestRemoteStore(t, srv.URL)
		_, err := a.QuerySince(context.Background(), models.TableCategories, nil)

		assert.ErrorIs(t, err, ErrServiceUnavailable)
		assert.True(t, IsUnreachable(err))
	})
}

// ── mapHTTPError ─────────────────────────────────────────────────────────────

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusGatewayTimeout, ErrBadGateway},
		{http.StatusTooManyRequests, ErrServiceUnavailable},
		{http.StatusTeapot, nil},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestRemoteStore(t, srv.URL)
			err := a.Ping(context.Background())
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			for _, sentinel := range []error{ErrBadRequest, ErrNotFound, ErrConflict} {
				assert.False(t, errors.Is(err, sentinel))
			}
			assert.Contains(t, err.Error(), "http 418")
		})
	}
}
