package metrics

import (
	"context"

	"adoptme-web/internal/domain/animals"
	"adoptme-web/internal/platform/logger"
)

type Service struct {
	backend Backend
	log     logger.Logger
}

func NewService(backend Backend, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{backend: backend, log: log}
}

// Summary nunca falla hacia el widget: ante error devuelve el resumen vacío
// y degraded=true.
func (s *Service) Summary(ctx context.Context) (Summary, bool) {
	items, err := s.backend.ListAnimals(ctx, animals.Filter{})
	if err != nil {
		s.log.Warn("metrics summary unavailable", map[string]any{"error": err})
		return Summarize(nil), true
	}
	return Summarize(items), false
}

// AdoptionChart: misma política, serie vacía con ticks [0,1].
func (s *Service) AdoptionChart(ctx context.Context, days int) (Chart, bool) {
	days = ClampDays(days)
	points, err := s.backend.AdoptionMetrics(ctx, days)
	if err != nil {
		s.log.Warn("adoption metrics unavailable", map[string]any{"days": days, "error": err})
		return EmptyChart(), true
	}
	return BuildChart(points), false
}

func ClampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDays
	case days > MaxDays:
		return MaxDays
	default:
		return days
	}
}
