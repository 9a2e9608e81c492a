package account

import (
	"context"

	"adoptme-web/internal/ports/auth"
)

// Backend es el lado auth/perfil del API; lo implementa adapters/backend.
type Backend interface {
	auth.SessionChecker

	Login(ctx context.Context, email, password string) (auth.User, error)
	Register(ctx context.Context, name, email, password string) (auth.User, error)
	// Logout siempre borra las credenciales locales, aunque el backend falle.
	Logout(ctx context.Context) error
	CaptureToken(ctx context.Context, token string) error
	OAuthURL(next string) string

	// GetProfile devuelve found=false si el usuario todavía no tiene perfil.
	GetProfile(ctx context.Context) (Profile, bool, error)
	SaveProfile(ctx context.Context, p Profile) error
}
