package animals

import (
	"strings"
	"time"
	"unicode"
)

type Tab string

const (
	TabAll  Tab = "all"
	TabMine Tab = "mine"
	TabRecs Tab = "recs"
)

// ParseTab cae en "all" ante valores desconocidos.
func ParseTab(s string) Tab {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabMine:
		return TabMine
	case TabRecs:
		return TabRecs
	default:
		return TabAll
	}
}

// Listing son las tres colecciones de la vista. Cada sección guarda su
// propio error; recomendaciones que fallan quedan vacías.
type Listing struct {
	All     []Animal
	Mine    []Animal
	Recs    Recommendations
	AllErr  error
	MineErr error
	RecsErr error
}

// Remove saca el id de all, mine, recs.items y recs.ids.
func (l *Listing) Remove(id int64) {
	l.All = without(l.All, id)
	l.Mine = without(l.Mine, id)
	l.Recs.Items = without(l.Recs.Items, id)

	ids := l.Recs.IDs[:0:0]
	for _, x := range l.Recs.IDs {
		if x.Int64() != id {
			ids = append(ids, x)
		}
	}
	l.Recs.IDs = ids
}

// Replace pisa el registro con el mismo id en las tres colecciones.
func (l *Listing) Replace(a Animal) {
	id := a.ID.Int64()
	replaceIn(l.All, id, a)
	replaceIn(l.Mine, id, a)
	replaceIn(l.Recs.Items, id, a)
}

// ApplyAdopt refleja un adopt-toggle exitoso. Si el backend no devolvió el
// registro, se sintetiza adotado_em (mark => now, undo => nil).
func (l *Listing) ApplyAdopt(id int64, action AdoptAction, updated *Animal, now time.Time) {
	if updated != nil {
		l.Replace(*updated)
		return
	}

	stamp := adoptedStamp(action, now)
	for _, items := range [][]Animal{l.All, l.Mine, l.Recs.Items} {
		for i := range items {
			if items[i].ID.Int64() == id {
				items[i].AdoptedAt = stamp
			}
		}
	}
}

func adoptedStamp(action AdoptAction, now time.Time) *string {
	if action != AdoptMark {
		return nil
	}
	s := now.UTC().Format(time.RFC3339)
	return &s
}

// Find busca el id primero en all, después en mine y recs.
func (l *Listing) Find(id int64) (Animal, bool) {
	for _, items := range [][]Animal{l.All, l.Mine, l.Recs.Items} {
		for _, a := range items {
			if a.ID.Int64() == id {
				return a, true
			}
		}
	}
	return Animal{}, false
}

func (l *Listing) clone() Listing {
	out := *l
	out.All = append([]Animal(nil), l.All...)
	out.Mine = append([]Animal(nil), l.Mine...)
	out.Recs.Items = append([]Animal(nil), l.Recs.Items...)
	out.Recs.IDs = append(l.Recs.IDs[:0:0], l.Recs.IDs...)
	return out
}

func without(items []Animal, id int64) []Animal {
	out := make([]Animal, 0, len(items))
	for _, a := range items {
		if a.ID.Int64() != id {
			out = append(out, a)
		}
	}
	return out
}

func replaceIn(items []Animal, id int64, a Animal) {
	for i := range items {
		if items[i].ID.Int64() == id {
			items[i] = a
		}
	}
}

// Acciones por card.
const (
	ActionEdit        = "edit"
	ActionDelete      = "delete"
	ActionAdoptToggle = "adopt-toggle"
	ActionContact     = "contact"
)

// Card es un animal listo para mostrar.
type Card struct {
	Animal      Animal   `json:"animal"`
	Mine        bool     `json:"mine"`
	Adopted     bool     `json:"adopted"`
	Recommended bool     `json:"recommended"`
	RankLabel   string   `json:"rank_label,omitempty"`
	ContactURL  string   `json:"contact_url,omitempty"`
	Actions     []string `json:"actions"`
}

// View es la respuesta de GET /animais.
type View struct {
	Tab      Tab      `json:"tab"`
	Filter   Filter   `json:"filter"`
	Items    []Card   `json:"items"`
	Count    int      `json:"count"`
	RecCount int      `json:"rec_count"`
	Errors   []string `json:"errors,omitempty"`
	// Cached: salió de la foto de la sesión (?refresh=1 para recargar).
	Cached   bool     `json:"cached"`
}

// BuildView elige la colección del tab, filtra y arma las cards.
// El chip "recommended" solo aparece fuera del tab recs; el rank label solo dentro.
func BuildView(l Listing, tab Tab, f Filter, userID int64) View {
	recs := NewRecSet(l.Recs.IDs)

	var (
		source []Animal
		errs   []string
	)
	switch tab {
	case TabMine:
		source = l.Mine
		if l.MineErr != nil {
			errs = append(errs, l.MineErr.Error())
		}
	case TabRecs:
		source = l.Recs.Items
	default:
		tab = TabAll
		source = l.All
		if l.AllErr != nil {
			errs = append(errs, l.AllErr.Error())
		}
	}

	filtered := f.Apply(source)
	cards := make([]Card, 0, len(filtered))
	for _, a := range filtered {
		id := a.ID.Int64()
		c := Card{
			Animal:     a,
			Mine:       IsMine(a, userID),
			Adopted:    a.Adopted(),
			ContactURL: ContactURL(a.DonorContact),
			Actions:    []string{},
		}
		if tab == TabRecs {
			c.RankLabel = recs.RankLabel(id)
		} else {
			c.Recommended = recs.Has(id)
		}
		if c.Mine {
			c.Actions = append(c.Actions, ActionEdit, ActionDelete, ActionAdoptToggle)
		}
		if c.ContactURL != "" {
			c.Actions = append(c.Actions, ActionContact)
		}
		cards = append(cards, c)
	}

	return View{
		Tab:      tab,
		Filter:   f,
		Items:    cards,
		Count:    len(cards),
		RecCount: recs.Len(),
		Errors:   errs,
	}
}

// ContactURL arma el link de WhatsApp con solo los dígitos del contacto.
func ContactURL(contact string) string {
	var b strings.Builder
	for _, r := range contact {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "https://wa.me/" + b.String()
}
