package metrics

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"adoptme-web/internal/domain/animals"
	"adoptme-web/internal/platform/logger"

	"github.com/stretchr/testify/assert"
)

func TestService_SummaryDegradesOnError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Warn, Format: logger.FormatJSON, Output: &buf})
	svc := NewService(&fakeBackend{err: errors.New("down")}, log)

	s, degraded := svc.Summary(context.Background())

	assert.True(t, degraded)
	assert.Zero(t, s.Total)
	assert.NotNil(t, s.Species)
	assert.Contains(t, buf.String(), "metrics summary unavailable")
}

func TestService_SummaryOK(t *testing.T) {
	svc := NewService(&fakeBackend{items: []animals.Animal{
		{Species: "Gato"},
		{Species: "gato"},
	}}, nil)

	s, degraded := svc.Summary(context.Background())

	assert.False(t, degraded)
	assert.Equal(t, []SpeciesShare{{Species: "gato", Count: 2, Percent: 100}}, s.Species)
}

func TestService_AdoptionChartClampsAndDegrades(t *testing.T) {
	b := &fakeBackend{err: errors.New("down")}
	svc := NewService(b, nil)

	c, degraded := svc.AdoptionChart(context.Background(), 365)

	assert.True(t, degraded)
	assert.Equal(t, MaxDays, b.lastDays)
	assert.Equal(t, EmptyChart(), c)
}
