package metrics

import (
	"context"

	"adoptme-web/internal/domain/animals"
)

// Backend: lo que los widgets necesitan del API.
type Backend interface {
	ListAnimals(ctx context.Context, f animals.Filter) ([]animals.Animal, error)
	AdoptionMetrics(ctx context.Context, days int) ([]DayCount, error)
}
