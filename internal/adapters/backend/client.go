package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"adoptme-web/internal/platform/httpclient"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"
)

var (
	ErrNotConfigured = errors.New("backend client not configured")
	ErrNoSession     = errors.New("no session in context")
	// ErrNoToken: no hay credenciales guardadas; no se llama al backend.
	ErrNoToken = fmt.Errorf("%w: no stored credentials", auth.ErrUnauthenticated)
)

// AuthMode es la única estrategia de credenciales hacia el backend.
type AuthMode string

const (
	ModeBearer AuthMode = "bearer"
	ModeCookie AuthMode = "cookie"
)

// Config del cliente del API.
type Config struct {
	BaseURL string
	// PublicURL es la base que ve el navegador (redirect OAuth). Vacío => BaseURL.
	PublicURL string
	Mode      AuthMode
	Timeout   time.Duration

	// Opcional (tests).
	Transport http.RoundTripper
}

// Client habla con el API REST usando las credenciales de la sesión del
// request (session id en ctx => Store).
type Client struct {
	http      *httpclient.Client
	store     session.Store
	mode      AuthMode
	publicURL string
	now       func() time.Time

	locks sessionLocks
}

func NewClient(cfg Config, store session.Store) (*Client, error) {
	if store == nil {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Transport != nil {
		hc.HTTP.Transport = cfg.Transport
	}

	mode := AuthMode(strings.ToLower(strings.TrimSpace(string(cfg.Mode))))
	switch mode {
	case "":
		mode = ModeBearer
	case ModeBearer, ModeCookie:
	default:
		return nil, fmt.Errorf("backend: unknown auth mode %q", cfg.Mode)
	}

	public := strings.TrimSpace(cfg.PublicURL)
	if public == "" {
		public = hc.BaseURL
	}

	return &Client{
		http:      hc,
		store:     store,
		mode:      mode,
		publicURL: public,
		now:       time.Now,
	}, nil
}

func (c *Client) Mode() AuthMode {
	return c.mode
}

// call es el camino común: carga la sesión, aplica credenciales según el
// modo, manda y decodifica. requireAuth=true corta sin red si no hay credenciales.
func (c *Client) call(ctx context.Context, method, path string, body, out any, requireAuth bool) (*httpclient.Response, error) {
	sess, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if requireAuth && !c.hasCredentials(sess) {
		return nil, ErrNoToken
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:  method,
		Path:    path,
		Headers: c.credentialHeaders(sess),
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	if c.mode == ModeCookie && len(resp.Header.Values("Set-Cookie")) > 0 {
		err := c.update(ctx, func(s *session.Session) bool {
			merged, changed := mergeSetCookies(s.BackendCookie, resp.Header)
			s.BackendCookie = merged
			return changed
		})
		if err != nil {
			return nil, err
		}
	}

	if err := resp.Decode(out); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Client) hasCredentials(s session.Session) bool {
	if c.mode == ModeCookie {
		return s.BackendCookie != ""
	}
	return s.AccessToken != ""
}

func (c *Client) credentialHeaders(s session.Session) map[string]string {
	switch c.mode {
	case ModeCookie:
		if s.BackendCookie != "" {
			return map[string]string{"Cookie": s.BackendCookie}
		}
	default:
		if s.AccessToken != "" {
			return map[string]string{"Authorization": "Bearer " + s.AccessToken}
		}
	}
	return nil
}

// load trae la sesión del ctx; si todavía no existe en el store, una vacía.
func (c *Client) load(ctx context.Context) (session.Session, error) {
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return session.Session{}, ErrNoSession
	}
	s, err := c.store.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return session.Session{ID: id}, nil
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (c *Client) save(ctx context.Context, s session.Session) error {
	s.UpdatedAt = c.now().UTC()
	if err := c.store.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// update relee la sesión bajo el lock de su id, aplica fn y guarda si fn
// reporta cambios. Requests concurrentes de la misma sesión no se pisan.
func (c *Client) update(ctx context.Context, fn func(s *session.Session) bool) error {
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return ErrNoSession
	}
	unlock := c.locks.lock(id)
	defer unlock()

	sess, err := c.load(ctx)
	if err != nil {
		return err
	}
	if !fn(&sess) {
		return nil
	}
	return c.save(ctx, sess)
}
