package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"adoptme-web/internal/middleware"
	"adoptme-web/internal/platform/logger"
	"adoptme-web/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkerFunc func(ctx context.Context) (auth.User, error)

func (f checkerFunc) Me(ctx context.Context) (auth.User, error) { return f(ctx) }

func protected(t *testing.T, checker auth.SessionChecker) (http.Handler, *bool) {
	t.Helper()
	called := false
	h := middleware.AuthGate(checker, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		u, ok := middleware.CurrentUser(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(u.Name))
	}))
	return h, &called
}

func TestAuthGate_AuthenticatedRunsHandlerWithUser(t *testing.T) {
	h, called := protected(t, checkerFunc(func(context.Context) (auth.User, error) {
		return auth.User{ID: 7, Name: "Ana"}, nil
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animais", nil))

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", rec.Body.String())
}

func TestAuthGate_UnauthenticatedRedirectsWithNext(t *testing.T) {
	h, called := protected(t, checkerFunc(func(context.Context) (auth.User, error) {
		return auth.User{}, auth.ErrUnauthenticated
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animais?tab=mine&especie=Gato", nil))

	assert.False(t, *called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Fanimais%3Ftab%3Dmine%26especie%3DGato", rec.Header().Get("Location"))
}

func TestAuthGate_AnyErrorCountsAsUnauthenticated(t *testing.T) {
	h, called := protected(t, checkerFunc(func(context.Context) (auth.User, error) {
		return auth.User{}, errors.New("backend down")
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthenticated", body["error"])
	assert.Equal(t, "/login?next=%2Fme", body["login"])
}

func TestAuthGate_CancelledRequestWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h, called := protected(t, checkerFunc(func(ctx context.Context) (auth.User, error) {
		cancel()
		<-ctx.Done()
		return auth.User{}, ctx.Err()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animais", nil).WithContext(ctx))

	assert.False(t, *called)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestCheck_NilChecker(t *testing.T) {
	state, _, err := middleware.Check(context.Background(), nil)
	assert.Equal(t, middleware.GateUnauthenticated, state)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, "unauthenticated", state.String())
	assert.Equal(t, "checking", middleware.GateChecking.String())
}
