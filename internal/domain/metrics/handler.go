package metrics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/metricas", func(mr chi.Router) {
		mr.Get("/resumo", summaryHandler(svc))
		mr.Get("/adocoes", adoptionsHandler(svc))
	})
}

type summaryResponse struct {
	Summary
	Degraded bool `json:"degraded,omitempty"`
}

type chartResponse struct {
	Chart
	Days     int  `json:"days"`
	Degraded bool `json:"degraded,omitempty"`
}

// summaryHandler godoc
// @Summary  Totales y distribución por especie
// @Tags     metricas
// @Produce  json
// @Success  200 {object} Summary
// @Router   /metricas/resumo [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, degraded := svc.Summary(r.Context())
		if r.Context().Err() != nil {
			return
		}
		writeJSON(w, http.StatusOK, summaryResponse{Summary: s, Degraded: degraded})
	}
}

// adoptionsHandler godoc
// @Summary  Adopciones por día (últimos N días)
// @Tags     metricas
// @Produce  json
// @Param    days query int false "días (default 7)"
// @Success  200 {object} Chart
// @Router   /metricas/adocoes [get]
func adoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := DefaultDays
		if raw := r.URL.Query().Get("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "days must be an integer", http.StatusBadRequest)
				return
			}
			days = n
		}
		days = ClampDays(days)

		c, degraded := svc.AdoptionChart(r.Context(), days)
		if r.Context().Err() != nil {
			return
		}
		writeJSON(w, http.StatusOK, chartResponse{Chart: c, Days: days, Degraded: degraded})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
