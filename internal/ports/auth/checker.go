package auth

import "context"

// SessionChecker responde "quién soy" para la sesión del request.
// Devuelve ErrUnauthenticated (o un error del cliente) si no hay sesión válida.
type SessionChecker interface {
	Me(ctx context.Context) (User, error)
}
