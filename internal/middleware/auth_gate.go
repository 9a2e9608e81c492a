package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"adoptme-web/internal/platform/logger"
	"adoptme-web/internal/ports/auth"
)

type ctxKey string

const userKey ctxKey = "user"

// GateState es el estado del chequeo de sesión de un request protegido.
type GateState int

const (
	GateChecking GateState = iota
	GateAuthenticated
	GateUnauthenticated
)

func (s GateState) String() string {
	switch s {
	case GateAuthenticated:
		return "authenticated"
	case GateUnauthenticated:
		return "unauthenticated"
	default:
		return "checking"
	}
}

// LoginPath es adonde manda el gate a quien no tiene sesión.
const LoginPath = "/login"

// AuthGate pregunta "quién soy" antes de dejar pasar al handler.
// - autenticado => user en context y sigue
// - no autenticado => 302 a /login?next=<path original>; clientes JSON reciben 401
// - si el request se canceló durante el chequeo no se escribe nada
func AuthGate(checker auth.SessionChecker, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, user, err := Check(r.Context(), checker)

			if r.Context().Err() != nil {
				return
			}

			if state != GateAuthenticated {
				if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
					log.Warn("session check failed", map[string]any{
						"path":  r.URL.Path,
						"error": err,
					})
				}
				denied(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Check resuelve el estado del gate. Cualquier error de Me cuenta como no
// autenticado; el error se devuelve para logging.
func Check(ctx context.Context, checker auth.SessionChecker) (GateState, auth.User, error) {
	if checker == nil {
		return GateUnauthenticated, auth.User{}, auth.ErrUnauthenticated
	}
	u, err := checker.Me(ctx)
	if err != nil {
		return GateUnauthenticated, auth.User{}, err
	}
	return GateAuthenticated, u, nil
}

func CurrentUser(ctx context.Context) (auth.User, bool) {
	u, ok := ctx.Value(userKey).(auth.User)
	return u, ok
}

// WithUser es para tests y handlers que ya resolvieron el usuario.
func WithUser(ctx context.Context, u auth.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// LoginURL arma /login?next=<path+query escapado>.
func LoginURL(r *http.Request) string {
	return LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
}

func denied(w http.ResponseWriter, r *http.Request) {
	login := LoginURL(r)
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": auth.ErrUnauthenticated.Error(),
			"login": login,
		})
		return
	}
	http.Redirect(w, r, login, http.StatusFound)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/json")
}
