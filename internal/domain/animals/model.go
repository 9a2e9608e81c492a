package animals

import (
	"errors"
	"strings"

	"adoptme-web/internal/platform/jsonx"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Animal es un anuncio tal como lo expone el backend.
// idade y doador_id llegan con tipos variables; se normalizan en el borde (jsonx).
type Animal struct {
	ID           jsonx.FlexInt    `json:"id"`
	Name         string           `json:"nome"`
	Species      string           `json:"especie"`
	Breed        string           `json:"raca,omitempty"`
	Age          jsonx.FlexString `json:"idade"`
	Size         string           `json:"porte,omitempty"`
	Energy       string           `json:"energia,omitempty"`
	GoodWithKids jsonx.FlexBool   `json:"bom_com_criancas"`
	Description  string           `json:"descricao"`
	City         string           `json:"cidade"`
	PhotoURL     string           `json:"photo_url,omitempty"`
	DonorID      jsonx.FlexInt    `json:"doador_id"`
	DonorName    string           `json:"donor_name,omitempty"`
	DonorContact string           `json:"donor_whatsapp,omitempty"`
	AdoptedAt    *string          `json:"adotado_em"` // nil = disponible
	CreatedAt    string           `json:"created_at,omitempty"`
}

// Adopted: adotado_em no nulo (y no vacío).
func (a Animal) Adopted() bool {
	return a.AdoptedAt != nil && strings.TrimSpace(*a.AdoptedAt) != ""
}

// IsMine compara doador_id con el id del usuario, ambos numéricos.
func IsMine(a Animal, userID int64) bool {
	return userID != 0 && a.DonorID.Int64() == userID
}

// Input es el payload de alta/edición de un anuncio.
type Input struct {
	Name         string `json:"nome"`
	Species      string `json:"especie"`
	Breed        string `json:"raca,omitempty"`
	Age          string `json:"idade,omitempty"`
	Size         string `json:"porte,omitempty"`
	Energy       string `json:"energia,omitempty"`
	GoodWithKids bool   `json:"bom_com_criancas"`
	Description  string `json:"descricao"`
	City         string `json:"cidade"`
	PhotoURL     string `json:"photo_url,omitempty"`
	DonorName    string `json:"donor_name,omitempty"`
	DonorContact string `json:"donor_whatsapp,omitempty"`
}

// Normalize recorta espacios y exige nome, especie, descricao y cidade.
func (in Input) Normalize() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.TrimSpace(in.Species)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Age = strings.TrimSpace(in.Age)
	in.Size = strings.TrimSpace(in.Size)
	in.Energy = strings.TrimSpace(in.Energy)
	in.Description = strings.TrimSpace(in.Description)
	in.City = strings.TrimSpace(in.City)
	in.PhotoURL = strings.TrimSpace(in.PhotoURL)
	in.DonorName = strings.TrimSpace(in.DonorName)
	in.DonorContact = strings.TrimSpace(in.DonorContact)

	if in.Name == "" || in.Species == "" || in.Description == "" || in.City == "" {
		return Input{}, ErrInvalidInput
	}
	return in, nil
}

// AdoptAction es el "action" del PATCH de adopción.
type AdoptAction string

const (
	AdoptMark AdoptAction = "mark"
	AdoptUndo AdoptAction = "undo"
)

func ParseAdoptAction(s string) (AdoptAction, error) {
	switch AdoptAction(strings.ToLower(strings.TrimSpace(s))) {
	case AdoptMark:
		return AdoptMark, nil
	case AdoptUndo:
		return AdoptUndo, nil
	default:
		return "", ErrInvalidInput
	}
}

// Recommendations es la respuesta de /recomendacoes, en orden de ranking.
type Recommendations struct {
	Items []Animal        `json:"items"`
	IDs   []jsonx.FlexInt `json:"ids"`
}
