package adapthttp

import (
	"net/http"
	"strconv"
	"time"

	"familyfit/internal/app"

	"github.com/gorilla/mux"
)

func (s *Server) handleMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.ledger.Summaries()})
}

func (s *Server) handleEntriesList(w http.ResponseWriter, r *http.Request) {
	member := mux.Vars(r)["member"]
	items, err := s.ledger.History(member)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"member": member, "items": items})
}

func (s *Server) handleEntryAdd(w http.ResponseWriter, r *http.Request) {
	member := mux.Vars(r)["member"]

	var body struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.Date == "" {
		body.Date = localDayString(time.Now())
	}

	entry, err := s.ledger.AddEntry(r.Context(), member, body.Date, body.Weight)
	if err != nil && !app.IsWarning(err) {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{"member": member, "entry": entry}
	if err != nil {
		resp["warning"] = err.Error()
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	deleted, err := s.ledger.DeleteEntry(r.Context(), vars["member"], id)
	if err != nil && !app.IsWarning(err) {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{"deleted": deleted}
	if err != nil {
		resp["warning"] = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	member := mux.Vars(r)["member"]
	latest, err := s.ledger.LatestWeight(member)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	progress, err := s.ledger.Progress(member)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"member":   member,
		"latest":   latest,
		"progress": progress,
	})
}
