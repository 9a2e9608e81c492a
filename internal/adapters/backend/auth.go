package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"adoptme-web/internal/platform/httpclient"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"
)

type meResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user"`
}

type tokenResponse struct {
	OK          bool       `json:"ok"`
	User        *auth.User `json:"user"`
	AccessToken string     `json:"access_token"`
	Error       string     `json:"error"`
}

// Me implementa auth.SessionChecker: GET /auth/me.
func (c *Client) Me(ctx context.Context) (auth.User, error) {
	var out meResponse
	if _, err := c.call(ctx, http.MethodGet, "/auth/me", nil, &out, true); err != nil {
		if httpclient.StatusOf(err) == http.StatusUnauthorized {
			return auth.User{}, fmt.Errorf("%w: %w", auth.ErrUnauthenticated, err)
		}
		return auth.User{}, err
	}
	if !out.Authenticated || out.User == nil {
		return auth.User{}, auth.ErrUnauthenticated
	}

	u := *out.User
	err := c.update(ctx, func(s *session.Session) bool {
		s.User = &u
		return true
	})
	if err != nil {
		return auth.User{}, err
	}
	return u, nil
}

// Login: POST /auth/login {email, senha}. Guarda token (bearer) y usuario.
func (c *Client) Login(ctx context.Context, email, password string) (auth.User, error) {
	return c.authenticate(ctx, "/auth/login", map[string]string{
		"email": email,
		"senha": password,
	})
}

// Register: POST /auth/register {nome, email, senha}.
func (c *Client) Register(ctx context.Context, name, email, password string) (auth.User, error) {
	return c.authenticate(ctx, "/auth/register", map[string]string{
		"nome":  name,
		"email": email,
		"senha": password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (auth.User, error) {
	var out tokenResponse
	resp, err := c.call(ctx, http.MethodPost, path, body, &out, false)
	if err != nil {
		return auth.User{}, err
	}

	if c.mode == ModeBearer && strings.TrimSpace(out.AccessToken) == "" {
		msg := strings.TrimSpace(out.Error)
		if msg == "" {
			msg = "Resposta inesperada do servidor."
		}
		return auth.User{}, &httpclient.Error{
			Kind:       httpclient.KindParse,
			HTTPStatus: resp.StatusCode,
			Message:    msg,
			Payload:    resp.Body,
		}
	}

	// call ya pudo haber guardado cookies: update relee.
	var u auth.User
	err = c.update(ctx, func(s *session.Session) bool {
		if c.mode == ModeBearer {
			s.AccessToken = strings.TrimSpace(out.AccessToken)
		}
		if out.User != nil {
			u = *out.User
			s.User = &u
		}
		return true
	})
	if err != nil {
		return auth.User{}, err
	}
	return u, nil
}

// Logout avisa al backend y borra las credenciales locales siempre.
func (c *Client) Logout(ctx context.Context) error {
	sess, err := c.load(ctx)
	if err != nil {
		return err
	}

	var callErr error
	if c.hasCredentials(sess) {
		_, callErr = c.call(ctx, http.MethodPost, "/auth/logout", map[string]any{}, nil, false)
	}

	err = c.update(ctx, func(s *session.Session) bool {
		s.ClearCredentials()
		return true
	})
	if err != nil {
		return err
	}
	return callErr
}

// CaptureToken guarda el token que el callback OAuth entregó al navegador.
func (c *Client) CaptureToken(ctx context.Context, token string) error {
	return c.update(ctx, func(s *session.Session) bool {
		s.AccessToken = strings.TrimSpace(token)
		s.User = nil
		return true
	})
}

// OAuthURL arma la URL absoluta de inicio del flujo Google del backend.
func (c *Client) OAuthURL(next string) string {
	u := httpclient.JoinURL(c.publicURL, "/auth/login/google")
	if next != "" {
		u += "?next=" + url.QueryEscape(next)
	}
	return u
}
