package docsedit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/redline/history"
)

// RegisterHTTP registers the read-only inspection endpoints on the router.
// All mutation goes through the MCP tools; HTTP only exposes history state.
func (e *Editor) RegisterHTTP(r chi.Router) {
	r.Get("/api/history/{documentID}", e.handleGetHistory)
	r.Delete("/api/history/{documentID}", e.handleClearHistory)
	r.Get("/api/stats", e.handleStats)
}

func (e *Editor) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > history.DefaultMaxPerDocument {
		limit = history.DefaultMaxPerDocument
	}
	includeUndone := r.URL.Query().Get("include_undone") == "true"

	ops := e.registry.History(documentID, limit, includeUndone)
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id":      documentID,
		"operations":       ops,
		"total_operations": len(ops),
	})
}

func (e *Editor) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	cleared := e.ClearHistory(r.Context(), documentID)
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id": documentID,
		"cleared":     cleared,
	})
}

func (e *Editor) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, e.registry.Stats())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
