package middleware

import (
	"net/http"
	"time"

	"adoptme-web/internal/ports/session"

	"github.com/google/uuid"
)

const SessionCookieName = "adoptme_sid"

type SessionCookieOptions struct {
	Secure bool
	TTL    time.Duration
}

// SessionCookie asegura que cada navegador tenga un id de sesión (uuid) en
// la cookie adoptme_sid y lo deja en el context para los adapters.
// Valores que no son uuid se reemplazan.
func SessionCookie(opts SessionCookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, newSessionCookie(id, opts))
			}

			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), id)))
		})
	}
}

func newSessionCookie(id string, opts SessionCookieOptions) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if opts.TTL > 0 {
		c.MaxAge = int(opts.TTL.Seconds())
	}
	return c
}
