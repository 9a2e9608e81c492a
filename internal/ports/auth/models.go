package auth

import (
	"errors"

	"adoptme-web/internal/platform/jsonx"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
)

// User es lo que el backend devuelve en /auth/me, login y register.
type User struct {
	ID        jsonx.FlexInt `json:"id"`
	Name      string        `json:"nome"`
	Email     string        `json:"email"`
	AvatarURL string        `json:"avatar_url,omitempty"`
}
