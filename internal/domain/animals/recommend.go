package animals

import "adoptme-web/internal/platform/jsonx"

const (
	LabelStrongest = "Fortemente recomendado"
	LabelWeakest   = "Menos recomendado"
)

// RecSet es la pertenencia por id numérico a la lista de recomendados,
// así "5" y 5 son el mismo animal.
type RecSet struct {
	ids     map[int64]struct{}
	first   int64
	last    int64
	hasLast bool
}

func NewRecSet(ids []jsonx.FlexInt) RecSet {
	s := RecSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id.Int64()] = struct{}{}
	}
	if len(ids) > 0 {
		s.first = ids[0].Int64()
	}
	if len(ids) > 1 {
		s.last = ids[len(ids)-1].Int64()
		s.hasLast = true
	}
	return s
}

func (s RecSet) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s RecSet) Len() int {
	return len(s.ids)
}

// RankLabel: primero => "Fortemente recomendado", último (si hay más de uno)
// => "Menos recomendado". No hay más semántica de ranking.
func (s RecSet) RankLabel(id int64) string {
	if len(s.ids) == 0 {
		return ""
	}
	if id == s.first {
		return LabelStrongest
	}
	if s.hasLast && id == s.last {
		return LabelWeakest
	}
	return ""
}
