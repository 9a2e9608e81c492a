package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_LoginNormalizesEmail(t *testing.T) {
	b := &fakeBackend{}
	svc := NewService(b, nil)

	_, err := svc.Login(context.Background(), "  Ana@Example.COM ", "x")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", b.lastEmail)
}

func TestService_LoginRequiresFields(t *testing.T) {
	svc := NewService(&fakeBackend{}, nil)

	_, err := svc.Login(context.Background(), " ", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), "", "a@b.c", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_LogoutForgetsEvenOnBackendError(t *testing.T) {
	b := &fakeBackend{logoutErr: errors.New("502")}
	var forgotten []string
	svc := NewService(b, func(sid string) { forgotten = append(forgotten, sid) })

	err := svc.Logout(context.Background(), "sess-9")

	assert.Error(t, err)
	assert.True(t, b.loggedOut)
	assert.Equal(t, []string{"sess-9"}, forgotten)
}

func TestService_CaptureTokenTrims(t *testing.T) {
	b := &fakeBackend{}
	svc := NewService(b, nil)

	assert.ErrorIs(t, svc.CaptureToken(context.Background(), "   "), ErrInvalidInput)
	require.NoError(t, svc.CaptureToken(context.Background(), " abc "))
	assert.Equal(t, "abc", b.token)
}

func TestService_OAuthURLSanitizesNext(t *testing.T) {
	svc := NewService(&fakeBackend{}, nil)

	assert.Equal(t, "http://backend/auth/login/google?next=/perfil-adotante", svc.OAuthURL("//evil.example"))
	assert.Equal(t, "http://backend/auth/login/google?next=/animais", svc.OAuthURL("/animais"))
}
