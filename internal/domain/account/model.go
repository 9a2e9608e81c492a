package account

import (
	"errors"
	"net/url"
	"strings"

	"adoptme-web/internal/platform/jsonx"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	DefaultNextAfterLogin   = "/perfil-adotante"
	DefaultNextAfterCapture = "/animais"
)

// Profile es el perfil de adoptante que alimenta las recomendaciones.
type Profile struct {
	HousingType  string        `json:"tipo_moradia"`
	HasChildren  jsonx.FlexInt `json:"tem_criancas"`
	HoursPerWeek jsonx.FlexInt `json:"tempo_disponivel_horas_semana"`
	Lifestyle    string        `json:"estilo_vida"`
}

// Normalize exige tipo_moradia y estilo_vida; números negativos => 0.
func (p Profile) Normalize() (Profile, error) {
	p.HousingType = strings.TrimSpace(p.HousingType)
	p.Lifestyle = strings.TrimSpace(p.Lifestyle)
	if p.HasChildren < 0 {
		p.HasChildren = 0
	}
	if p.HoursPerWeek < 0 {
		p.HoursPerWeek = 0
	}
	if p.HousingType == "" || p.Lifestyle == "" {
		return Profile{}, ErrInvalidInput
	}
	return p, nil
}

// SafeNext devuelve next solo si es un path local absoluto ("/x").
// "//host", URLs absolutas y basura caen en fallback.
func SafeNext(next, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}
