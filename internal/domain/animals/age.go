package animals

import (
	"strconv"
	"strings"
)

// AgeBucket usa el mismo vocabulario que el filtro "idade" del backend.
type AgeBucket string

const (
	AgeYoung  AgeBucket = "filhote"
	AgeAdult  AgeBucket = "adulto"
	AgeSenior AgeBucket = "idoso"
)

func ParseAgeBucket(s string) (AgeBucket, bool) {
	switch AgeBucket(strings.ToLower(strings.TrimSpace(s))) {
	case AgeYoung:
		return AgeYoung, true
	case AgeAdult:
		return AgeAdult, true
	case AgeSenior:
		return AgeSenior, true
	default:
		return "", false
	}
}

// BucketOf clasifica la idade libre del anuncio.
// "filhote"/"idoso" en el texto mandan; si no, el número inicial:
// <=1 filhote, >=8 idoso, resto adulto. Sin número ni palabra clave => adulto.
func BucketOf(age string) AgeBucket {
	s := strings.ToLower(strings.TrimSpace(age))

	switch {
	case strings.Contains(s, string(AgeYoung)):
		return AgeYoung
	case strings.Contains(s, string(AgeSenior)):
		return AgeSenior
	}

	n, ok := leadingNumber(s)
	if !ok {
		return AgeAdult
	}
	switch {
	case n <= 1:
		return AgeYoung
	case n >= 8:
		return AgeSenior
	default:
		return AgeAdult
	}
}

// leadingNumber lee "3", "3 anos", "1,5" o "0.5".
func leadingNumber(s string) (float64, bool) {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == ',' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(s[:end], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
