package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"adoptme-web/internal/middleware"
	"adoptme-web/internal/platform/httpclient"
	"adoptme-web/internal/platform/logger"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes: login, registro, logout y OAuth. No pasan por el gate.
func RegisterPublicRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	r.Get("/login", loginHintHandler())
	r.Post("/login", loginHandler(svc))
	r.Post("/register", registerHandler(svc))
	r.Post("/logout", logoutHandler(svc, log))

	r.Get("/login/google", googleHandler(svc))
	r.Get("/auth/capture", captureHandler(svc))
}

// RegisterProtectedRoutes: /me y perfil de adoptante (detrás del AuthGate).
func RegisterProtectedRoutes(r chi.Router, svc *Service) {
	r.Get("/me", meHandler())
	r.Get("/perfil-adotante", getProfileHandler(svc))
	r.Post("/perfil-adotante", saveProfileHandler(svc))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
	Next     string `json:"next"`
}

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	Next     string `json:"next"`
}

type authResponse struct {
	OK   bool      `json:"ok"`
	User auth.User `json:"user"`
	Next string    `json:"next"`
}

type loginHint struct {
	Next   string `json:"next"`
	Google string `json:"google"`
}

type profileResponse struct {
	OK     bool     `json:"ok"`
	Exists bool     `json:"exists"`
	Perfil *Profile `json:"perfil"`
}

func loginHintHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := SafeNext(r.URL.Query().Get("next"), DefaultNextAfterLogin)
		writeJSON(w, http.StatusOK, loginHint{
			Next:   next,
			Google: "/login/google?next=" + url.QueryEscape(next),
		})
	}
}

// loginHandler godoc
// @Summary  Login con email y senha
// @Tags     auth
// @Accept   json
// @Produce  json
// @Success  200 {object} authResponse
// @Router   /login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse{
			OK:   true,
			User: u,
			Next: SafeNext(req.Next, DefaultNextAfterLogin),
		})
	}
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, err := svc.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{
			OK:   true,
			User: u,
			Next: SafeNext(req.Next, DefaultNextAfterLogin),
		})
	}
}

// logoutHandler responde ok aunque el backend falle: las credenciales
// locales ya se borraron.
func logoutHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, _ := session.IDFromContext(r.Context())
		if err := svc.Logout(r.Context(), sid); err != nil {
			log.Warn("backend logout failed", map[string]any{"error": err})
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func googleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, svc.OAuthURL(r.URL.Query().Get("next")), http.StatusFound)
	}
}

// captureHandler recibe el token que deja el callback OAuth del backend,
// lo guarda en la sesión y redirige a next.
func captureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if err := svc.CaptureToken(r.Context(), q.Get("token")); err != nil {
			writeServiceError(w, err)
			return
		}
		http.Redirect(w, r, SafeNext(q.Get("next"), DefaultNextAfterCapture), http.StatusFound)
	}
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.CurrentUser(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": u})
	}
}

func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, found, err := svc.Profile(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		resp := profileResponse{OK: true, Exists: found}
		if found {
			resp.Perfil = &p
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func saveProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Profile
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.SaveProfile(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profileResponse{OK: true, Exists: true, Perfil: &p})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, auth.ErrUnauthenticated) && httpclient.StatusOf(err) == 0:
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeError(w, httpclient.ProxyStatus(err), err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
