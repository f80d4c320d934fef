package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handlePerformance returns the derived performance snapshot for one
// notice: views, clicks, click-through rate, return on investment and
// the assigned tier. The snapshot is recomputed from counters on every
// call; it is never cached. Internal errors produce HTTP 500.
func (h *Handler) handlePerformance(w http.ResponseWriter, r *http.Request) {
	noticeID := chi.URLParam(r, "noticeID")
	if noticeID == "" {
		http.Error(w, "missing notice id", http.StatusBadRequest)
		return
	}
	snap, err := h.svc.GetPerformance(r.Context(), noticeID)
	if err != nil {
		h.logger.Error("performance snapshot error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
