package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"arena-notices/internal/core/domain"
)

// viewerRequest is the JSON body of a notice request.
type viewerRequest struct {
	ViewerID      string `json:"viewer_id"`
	IsKnownViewer bool   `json:"is_known_viewer"`
}

// handleNoticeRequest evaluates eligibility for the viewer and opens a
// display session. On success it returns the scheduled notice as JSON.
// If nothing is eligible it returns HTTP 204 No Content. Parsing errors
// produce HTTP 400; internal errors HTTP 500.
func (h *Handler) handleNoticeRequest(w http.ResponseWriter, r *http.Request) {
	var req viewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ViewerID == "" {
		http.Error(w, "viewer_id is required", http.StatusBadRequest)
		return
	}
	resp, err := h.svc.RequestNotice(r.Context(), domain.ViewerContext{
		ViewerID:      req.ViewerID,
		IsKnownViewer: req.IsKnownViewer,
	})
	if err != nil {
		h.logger.Error("request notice error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
