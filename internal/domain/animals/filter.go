package animals

import (
	"net/url"
	"strings"
)

// Filter es el estado de filtros de la vista; nunca se persiste.
// Campos vacíos no restringen.
type Filter struct {
	Species   string    `json:"especie,omitempty"`
	AgeBucket AgeBucket `json:"idade,omitempty"`
	Size      string    `json:"porte,omitempty"`
	City      string    `json:"cidade,omitempty"`
}

// ParseFilter lee especie, idade, porte y cidade del query string.
// Una idade desconocida se ignora.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Species: strings.TrimSpace(q.Get("especie")),
		Size:    strings.TrimSpace(q.Get("porte")),
		City:    strings.TrimSpace(q.Get("cidade")),
	}
	if b, ok := ParseAgeBucket(q.Get("idade")); ok {
		f.AgeBucket = b
	}
	return f
}

func (f Filter) IsEmpty() bool {
	return f.Species == "" && f.AgeBucket == "" && f.Size == "" && f.City == ""
}

// Values es el inverso de ParseFilter (query para el backend).
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Species != "" {
		v.Set("especie", f.Species)
	}
	if f.AgeBucket != "" {
		v.Set("idade", string(f.AgeBucket))
	}
	if f.Size != "" {
		v.Set("porte", f.Size)
	}
	if f.City != "" {
		v.Set("cidade", f.City)
	}
	return v
}

// Match combina las condiciones con AND.
func (f Filter) Match(a Animal) bool {
	if f.Species != "" && !strings.EqualFold(strings.TrimSpace(a.Species), f.Species) {
		return false
	}
	if f.Size != "" && !strings.EqualFold(strings.TrimSpace(a.Size), f.Size) {
		return false
	}
	if f.City != "" && !strings.Contains(strings.ToLower(a.City), strings.ToLower(f.City)) {
		return false
	}
	if f.AgeBucket != "" && BucketOf(string(a.Age)) != f.AgeBucket {
		return false
	}
	return true
}

// Apply filtra manteniendo el orden. Sin filtros devuelve la misma lista.
func (f Filter) Apply(items []Animal) []Animal {
	if f.IsEmpty() {
		return items
	}
	out := make([]Animal, 0, len(items))
	for _, a := range items {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}
