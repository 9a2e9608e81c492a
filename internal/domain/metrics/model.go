package metrics

import "adoptme-web/internal/platform/jsonx"

const (
	// SampleSize es cuántos anuncios entran en el resumen.
	SampleSize = 200

	DefaultDays = 7
	MaxDays     = 90

	UnknownSpecies = "desconhecido"
	SeriesName     = "Adoções"
)

// SpeciesShare es una fila de la distribución por especie.
type SpeciesShare struct {
	Species string `json:"especie"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Summary es el widget "Visão rápida".
type Summary struct {
	Total        int            `json:"total"`
	Adopted      int            `json:"adopted"`
	Available    int            `json:"available"`
	GoodWithKids int            `json:"good_with_kids"`
	Species      []SpeciesShare `json:"species"`
}

// DayCount es un punto de /animais/adoption-metrics.
type DayCount struct {
	Day   jsonx.FlexString `json:"day"`
	Count float64          `json:"count"`
}

type Point struct {
	Label string `json:"x"`
	Day   string `json:"day"`
	Count int64  `json:"y"`
}

// Chart es la serie diaria de adopciones lista para graficar.
type Chart struct {
	Series string  `json:"series"`
	Points []Point `json:"points"`
	Ticks  []int64 `json:"y_ticks"`
}
