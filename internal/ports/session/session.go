package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"adoptme-web/internal/ports/auth"
)

var (
	ErrNotFound = errors.New("session not found")
)

// Session reemplaza al localStorage del cliente: credenciales del backend
// asociadas a la cookie del navegador.
type Session struct {
	ID            string     `json:"id"`
	AccessToken   string     `json:"access_token,omitempty"`
	BackendCookie string     `json:"backend_cookie,omitempty"`
	User          *auth.User `json:"user,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasCredentials indica si hay algo que mandar al backend.
func (s Session) HasCredentials() bool {
	return s.AccessToken != "" || s.BackendCookie != ""
}

// ClearCredentials borra token, cookie y usuario cacheado (logout).
func (s *Session) ClearCredentials() {
	s.AccessToken = ""
	s.BackendCookie = ""
	s.User = nil
}

type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, id string) error
}

type ctxKey string

const idKey ctxKey = "session_id"

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

func IDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(idKey).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
