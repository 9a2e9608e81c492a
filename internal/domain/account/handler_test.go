package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adoptme-web/internal/middleware"
	"adoptme-web/internal/platform/httpclient"
	"adoptme-web/internal/platform/logger"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	user      auth.User
	loginErr  error
	logoutErr error
	loggedOut bool
	token     string
	lastEmail string
	profile   *Profile
	savedProf Profile
}

func (b *fakeBackend) Me(ctx context.Context) (auth.User, error) { return b.user, nil }

func (b *fakeBackend) Login(ctx context.Context, email, password string) (auth.User, error) {
	b.lastEmail = email
	return b.user, b.loginErr
}

func (b *fakeBackend) Register(ctx context.Context, name, email, password string) (auth.User, error) {
	return b.user, b.loginErr
}

func (b *fakeBackend) Logout(ctx context.Context) error {
	b.loggedOut = true
	return b.logoutErr
}

func (b *fakeBackend) CaptureToken(ctx context.Context, token string) error {
	b.token = token
	return nil
}

func (b *fakeBackend) OAuthURL(next string) string {
	return "http://backend/auth/login/google?next=" + next
}

func (b *fakeBackend) GetProfile(ctx context.Context) (Profile, bool, error) {
	if b.profile == nil {
		return Profile{}, false, nil
	}
	return *b.profile, true, nil
}

func (b *fakeBackend) SaveProfile(ctx context.Context, p Profile) error {
	b.savedProf = p
	return nil
}

func newTestRouter(b *fakeBackend, forgotten *[]string) http.Handler {
	svc := NewService(b, func(sid string) { *forgotten = append(*forgotten, sid) })

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := session.WithID(req.Context(), "sess-1")
			ctx = middleware.WithUser(ctx, b.user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	RegisterPublicRoutes(r, svc, logger.NewNop())
	RegisterProtectedRoutes(r, svc)
	return r
}

func send(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLogin_NormalizesEmailAndSanitizesNext(t *testing.T) {
	b := &fakeBackend{user: auth.User{ID: 7, Name: "Ana"}}
	var forgotten []string
	h := newTestRouter(b, &forgotten)

	rec := send(h, http.MethodPost, "/login", `{"email":" Ana@X.com ","senha":"pw","next":"//evil"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@x.com", b.lastEmail)

	var out authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.OK)
	assert.Equal(t, DefaultNextAfterLogin, out.Next)
	assert.Equal(t, "Ana", out.User.Name)
}

func TestLogin_BackendRejection(t *testing.T) {
	b := &fakeBackend{loginErr: &httpclient.Error{Kind: httpclient.KindStatus, HTTPStatus: 401, Message: "Credenciais inválidas"}}
	var forgotten []string
	h := newTestRouter(b, &forgotten)

	rec := send(h, http.MethodPost, "/login", `{"email":"a@x.com","senha":"errada"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credenciais inválidas")

	rec = send(h, http.MethodPost, "/login", `{"email":"","senha":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_AlwaysOK(t *testing.T) {
	b := &fakeBackend{logoutErr: errors.New("down")}
	var forgotten []string
	h := newTestRouter(b, &forgotten)

	rec := send(h, http.MethodPost, "/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, b.loggedOut)
	assert.Equal(t, []string{"sess-1"}, forgotten)
}

func TestGoogleAndCaptureRedirects(t *testing.T) {
	b := &fakeBackend{}
	var forgotten []string
	h := newTestRouter(b, &forgotten)

	rec := send(h, http.MethodGet, "/login/google?next=https://evil", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "http://backend/auth/login/google?next="+DefaultNextAfterLogin, rec.Header().Get("Location"))

	rec = send(h, http.MethodGet, "/auth/capture?token=abc&next=%2Fanimais%3Ftab%3Drecs", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/animais?tab=recs", rec.Header().Get("Location"))
	assert.Equal(t, "abc", b.token)

	rec = send(h, http.MethodGet, "/auth/capture", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileRoutes(t *testing.T) {
	b := &fakeBackend{}
	var forgotten []string
	h := newTestRouter(b, &forgotten)

	rec := send(h, http.MethodGet, "/perfil-adotante", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"exists":false,"perfil":null}`, rec.Body.String())

	rec = send(h, http.MethodPost, "/perfil-adotante", `{"tipo_moradia":"apartamento","tem_criancas":"1","tempo_disponivel_horas_semana":5,"estilo_vida":"calmo"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "apartamento", b.savedProf.HousingType)
	assert.EqualValues(t, 1, b.savedProf.HasChildren)

	rec = send(h, http.MethodPost, "/perfil-adotante", `{"tipo_moradia":"casa"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMe_ReturnsGateUser(t *testing.T) {
	b := &fakeBackend{user: auth.User{ID: 3, Name: "Bia", Email: "bia@x.com"}}
	var forgotten []string
	h := newTestRouter(b, &forgotten)

	rec := send(h, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nome":"Bia"`)
}
