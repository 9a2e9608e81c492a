package backend

import (
	"context"
	"net/http"
	"strconv"

	"adoptme-web/internal/domain/metrics"
)

var _ metrics.Backend = (*Client)(nil)

type adoptionMetricsResponse struct {
	Days []metrics.DayCount `json:"days"`
}

// AdoptionMetrics: GET /animais/adoption-metrics?days=N => {days:[{day, count}]}.
func (c *Client) AdoptionMetrics(ctx context.Context, days int) ([]metrics.DayCount, error) {
	var out adoptionMetricsResponse
	path := "/animais/adoption-metrics?days=" + strconv.Itoa(days)
	if _, err := c.call(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	if out.Days == nil {
		return []metrics.DayCount{}, nil
	}
	return out.Days, nil
}
