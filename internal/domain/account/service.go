package account

import (
	"context"
	"strings"

	"adoptme-web/internal/ports/auth"
)

type Service struct {
	backend Backend

	// onLogout se llama con el id de sesión al salir (p.ej. descartar fotos del listado).
	onLogout func(sessionID string)
}

func NewService(backend Backend, onLogout func(sessionID string)) *Service {
	if onLogout == nil {
		onLogout = func(string) {}
	}
	return &Service{backend: backend, onLogout: onLogout}
}

func (s *Service) Me(ctx context.Context) (auth.User, error) {
	return s.backend.Me(ctx)
}

func (s *Service) Login(ctx context.Context, email, password string) (auth.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return auth.User{}, ErrInvalidInput
	}
	return s.backend.Login(ctx, email, password)
}

func (s *Service) Register(ctx context.Context, name, email, password string) (auth.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return auth.User{}, ErrInvalidInput
	}
	return s.backend.Register(ctx, name, email, password)
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	err := s.backend.Logout(ctx)
	s.onLogout(sessionID)
	return err
}

func (s *Service) CaptureToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidInput
	}
	return s.backend.CaptureToken(ctx, token)
}

func (s *Service) OAuthURL(next string) string {
	return s.backend.OAuthURL(SafeNext(next, DefaultNextAfterLogin))
}

func (s *Service) Profile(ctx context.Context) (Profile, bool, error) {
	return s.backend.GetProfile(ctx)
}

func (s *Service) SaveProfile(ctx context.Context, p Profile) (Profile, error) {
	p, err := p.Normalize()
	if err != nil {
		return Profile{}, err
	}
	if err := s.backend.SaveProfile(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
