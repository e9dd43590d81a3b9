package adapthttp

import (
	"net/http"

	"familyfit/internal/domain"
)

func (s *Server) handleChartsSeries(w http.ResponseWriter, r *http.Request) {
	unit, err := domain.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	points, err := s.charts.Series(r.Context(), unit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"unit":  unit,
		"items": points,
	})
}
