package metrics

import (
	"math"
	"strings"

	"adoptme-web/internal/domain/animals"
)

// Summarize calcula totales sobre los primeros SampleSize anuncios.
// Especies en minúscula, en orden de aparición; porcentaje redondeado.
func Summarize(items []animals.Animal) Summary {
	if len(items) > SampleSize {
		items = items[:SampleSize]
	}

	s := Summary{Total: len(items), Species: []SpeciesShare{}}
	index := map[string]int{}

	for _, a := range items {
		if a.Adopted() {
			s.Adopted++
		}
		if bool(a.GoodWithKids) {
			s.GoodWithKids++
		}

		sp := strings.ToLower(strings.TrimSpace(a.Species))
		if sp == "" {
			sp = UnknownSpecies
		}
		i, ok := index[sp]
		if !ok {
			i = len(s.Species)
			index[sp] = i
			s.Species = append(s.Species, SpeciesShare{Species: sp})
		}
		s.Species[i].Count++
	}
	s.Available = s.Total - s.Adopted

	for i := range s.Species {
		s.Species[i].Percent = int(math.Round(float64(s.Species[i].Count) * 100 / float64(s.Total)))
	}
	return s
}

const (
	// maxTicks acota el eje Y; con máximos grandes el paso crece.
	maxTicks = 10
	// maxChartCount: por encima, int64 y float64 dejan de ser exactos.
	maxChartCount = 1 << 53
)

// BuildChart convierte YYYY-MM-DD en DD/MM y calcula los ticks del eje Y.
// Conteos negativos o NaN cuentan 0; los enormes (o +Inf) se recortan.
func BuildChart(days []DayCount) Chart {
	c := Chart{Series: SeriesName, Points: make([]Point, 0, len(days))}

	maxCount := 0.0
	for _, d := range days {
		raw := string(d.Day)
		count := d.Count
		switch {
		case count < 0 || math.IsNaN(count):
			count = 0
		case count > maxChartCount:
			count = maxChartCount
		}
		if count > maxCount {
			maxCount = count
		}
		c.Points = append(c.Points, Point{
			Label: DayLabel(raw),
			Day:   raw,
			Count: int64(math.Round(count)),
		})
	}

	c.Ticks = Ticks(maxCount)
	return c
}

// EmptyChart es lo que se muestra cuando las métricas no cargan.
func EmptyChart() Chart {
	return Chart{Series: SeriesName, Points: []Point{}, Ticks: []int64{0, 1}}
}

// DayLabel toma DD de [8:10] y MM de [5:7], recortando al largo del texto:
// "2024-05-09" => "09/05", "2024-05-9" => "9/05". Si falta alguno, tal cual.
func DayLabel(day string) string {
	dd, mm := clip(day, 8, 10), clip(day, 5, 7)
	if dd == "" || mm == "" {
		return day
	}
	return dd + "/" + mm
}

func clip(s string, from, to int) string {
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return ""
	}
	return s[from:to]
}

// Ticks va de 0 hasta cubrir max(1, ceil(maxCount)) con paso entero.
// Hasta maxTicks el paso es 1; después nunca hay más de maxTicks+1 ticks.
func Ticks(maxCount float64) []int64 {
	if math.IsNaN(maxCount) || maxCount < 1 {
		maxCount = 1
	}
	if maxCount > maxChartCount {
		maxCount = maxChartCount
	}
	top := int64(math.Ceil(maxCount))

	step := int64(1)
	if top > maxTicks {
		step = (top + maxTicks - 1) / maxTicks
	}
	out := make([]int64, 0, maxTicks+1)
	for v := int64(0); ; v += step {
		out = append(out, v)
		if v >= top {
			break
		}
	}
	return out
}
