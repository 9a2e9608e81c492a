package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"adoptme-web/internal/adapters/backend"
	"adoptme-web/internal/adapters/session/memory"
	"adoptme-web/internal/domain/animals"
	"adoptme-web/internal/platform/httpclient"
	"adoptme-web/internal/platform/jsonx"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sid = "3f0c8b52-7a51-4a8e-9e84-5c1d2b7c9a10"

type fixture struct {
	srv    *httptest.Server
	client *backend.Client
	store  session.Store
	hits   *int64
}

func newFixture(t *testing.T, mode backend.AuthMode, h http.HandlerFunc) fixture {
	t.Helper()

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	store := memory.NewStore(time.Hour)
	c, err := backend.NewClient(backend.Config{
		BaseURL: srv.URL + "/api/",
		Mode:    mode,
		Timeout: 2 * time.Second,
	}, store)
	require.NoError(t, err)

	return fixture{srv: srv, client: c, store: store, hits: &hits}
}

func ctxWithSession() context.Context {
	return session.WithID(context.Background(), sid)
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestMe_WithoutTokenDoesNotCallBackend(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	_, err := f.client.Me(ctxWithSession())
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.ErrNoToken)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Zero(t, atomic.LoadInt64(f.hits))
}

func TestMe_WithoutSessionInContext(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(http.ResponseWriter, *http.Request) {})

	_, err := f.client.Me(context.Background())
	assert.ErrorIs(t, err, backend.ErrNoSession)
}

func TestLogin_BearerStoresTokenAndSendsItAfterwards(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		switch r.URL.Path {
		case "/api/auth/login":
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ana@x.com", body["email"])
			assert.Equal(t, "segredo", body["senha"])
			writeBody(w, 200, map[string]any{
				"ok":           true,
				"access_token": "tok-1",
				"user":         map[string]any{"id": "7", "nome": "Ana", "email": "ana@x.com"},
			})
		case "/api/animais":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "Gato", r.URL.Query().Get("especie"))
			writeBody(w, 200, []map[string]any{{"id": 1, "nome": "Mia", "especie": "Gato", "doador_id": "7"}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := ctxWithSession()

	u, err := f.client.Login(ctx, "ana@x.com", "segredo")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID.Int64())

	stored, err := f.store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", stored.AccessToken)
	require.NotNil(t, stored.User)
	assert.Equal(t, "Ana", stored.User.Name)

	items, err := f.client.ListAnimals(ctx, animals.Filter{Species: "Gato"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, animals.IsMine(items[0], 7))
}

func TestLogin_RejectedKeepsServerMessage(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, 401, map[string]any{"ok": false, "error": "Credenciais inválidas"})
	})

	_, err := f.client.Login(ctxWithSession(), "ana@x.com", "errada")
	require.Error(t, err)

	e, ok := httpclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 401, e.HTTPStatus)
	assert.Equal(t, "Credenciais inválidas", e.Message)
}

func TestCookieMode_CapturesSetCookieAndLogoutAlwaysClears(t *testing.T) {
	f := newFixture(t, backend.ModeCookie, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			writeBody(w, 200, map[string]any{"ok": true, "user": map[string]any{"id": 3, "nome": "Bia"}})
		case "/api/auth/me":
			assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
			assert.Empty(t, r.Header.Get("Authorization"))
			writeBody(w, 200, map[string]any{"authenticated": true, "user": map[string]any{"id": 3, "nome": "Bia"}})
		case "/api/auth/logout":
			writeBody(w, 500, map[string]any{"error": "boom"})
		}
	})
	ctx := ctxWithSession()

	_, err := f.client.Login(ctx, "bia@x.com", "pw")
	require.NoError(t, err)

	u, err := f.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bia", u.Name)

	err = f.client.Logout(ctx)
	assert.Equal(t, 500, httpclient.StatusOf(err))

	stored, err := f.store.Get(ctx, sid)
	require.NoError(t, err)
	assert.False(t, stored.HasCredentials())
	assert.Nil(t, stored.User)
}

func TestMe_Unauthorized(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, 401, map[string]any{"authenticated": false})
	})
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "expired"))

	_, err := f.client.Me(ctx)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	assert.Equal(t, 401, httpclient.StatusOf(err))
}

func TestListAnimals_RejectsNonArray(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, 200, map[string]any{"items": []any{}})
	})
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "tok"))

	_, err := f.client.ListAnimals(ctx, animals.Filter{})
	e, ok := httpclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, httpclient.KindParse, e.Kind)
}

func TestRecommendations_MixedIDTypes(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recomendacoes", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("n"))
		_, _ = w.Write([]byte(`{"items":[{"id":2},{"id":"5"}],"ids":[2,"5"]}`))
	})
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "tok"))

	recs, err := f.client.Recommendations(ctx, 12)
	require.NoError(t, err)
	if diff := cmp.Diff([]jsonx.FlexInt{2, 5}, recs.IDs); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	set := animals.NewRecSet(recs.IDs)
	assert.True(t, set.Has(2))
	assert.True(t, set.Has(5))
}

func TestToggleAdopt_WithoutRecordReturnsNil(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/animais/9/adopt", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mark", body["action"])
		writeBody(w, 200, map[string]any{"ok": true})
	})
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "tok"))

	got, err := f.client.ToggleAdopt(ctx, 9, animals.AdoptMark)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdoptionMetrics(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/animais/adoption-metrics", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{"days":[{"day":"2024-05-09","count":2}]}`))
	})
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "tok"))

	days, err := f.client.AdoptionMetrics(ctx, 7)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-05-09", string(days[0].Day))
	assert.Equal(t, 2.0, days[0].Count)
}

func TestGetProfile_NotFoundIsNotAnError(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, 404, map[string]any{"error": "not found"})
	})
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "tok"))

	_, found, err := f.client.GetProfile(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNetworkFailure(t *testing.T) {
	f := newFixture(t, backend.ModeBearer, func(http.ResponseWriter, *http.Request) {})
	f.srv.Close()
	ctx := ctxWithSession()
	require.NoError(t, f.client.CaptureToken(ctx, "tok"))

	_, err := f.client.MyAnimals(ctx)
	e, ok := httpclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, httpclient.KindNetwork, e.Kind)
	assert.NotEmpty(t, e.Message)
	assert.NotNil(t, errors.Unwrap(e))
}

func TestOAuthURL(t *testing.T) {
	store := memory.NewStore(0)

	c, err := backend.NewClient(backend.Config{BaseURL: "http://backend:5000"}, store)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:5000/auth/login/google?next=%2Fanimais", c.OAuthURL("/animais"))

	c, err = backend.NewClient(backend.Config{BaseURL: "http://backend:5000", PublicURL: "https://adoptme.example/api/"}, store)
	require.NoError(t, err)
	assert.Equal(t, "https://adoptme.example/api/auth/login/google?next=%2F", c.OAuthURL("/"))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := backend.NewClient(backend.Config{BaseURL: "http://x"}, nil)
	assert.ErrorIs(t, err, backend.ErrNotConfigured)

	_, err = backend.NewClient(backend.Config{}, memory.NewStore(0))
	assert.ErrorIs(t, err, backend.ErrNotConfigured)

	_, err = backend.NewClient(backend.Config{BaseURL: "http://x", Mode: "jwt"}, memory.NewStore(0))
	assert.Error(t, err)
}

func TestCookieMode_ConcurrentLoadKeepsEveryCookie(t *testing.T) {
	// Los tres handlers esperan a que lleguen los tres requests: todos
	// leyeron la sesión antes de que alguno guarde.
	var arrived sync.WaitGroup
	arrived.Add(3)
	wait := func() {
		arrived.Done()
		done := make(chan struct{})
		go func() { arrived.Wait(); close(done) }()
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}

	f := newFixture(t, backend.ModeCookie, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Cookie"), "session=x")
		switch r.URL.Path {
		case "/api/animais":
			wait()
			http.SetCookie(w, &http.Cookie{Name: "a", Value: "1"})
			writeBody(w, 200, []any{})
		case "/api/animais/mine":
			wait()
			http.SetCookie(w, &http.Cookie{Name: "b", Value: "2"})
			writeBody(w, 200, []any{})
		case "/api/recomendacoes":
			wait()
			http.SetCookie(w, &http.Cookie{Name: "c", Value: "3"})
			writeBody(w, 200, map[string]any{"items": []any{}})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})
	ctx := ctxWithSession()
	require.NoError(t, f.store.Save(ctx, session.Session{ID: sid, BackendCookie: "session=x"}))

	svc := animals.NewService(f.client, nil, 3)
	_, err := svc.Load(ctx, sid, 0)
	require.NoError(t, err)

	stored, err := f.store.Get(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "a=1; b=2; c=3; session=x", stored.BackendCookie)
}
