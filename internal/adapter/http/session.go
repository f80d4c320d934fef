package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"arena-notices/internal/core/port"
)

// handleNoticeDismiss closes a visible notice at the viewer's request.
// Unknown tokens yield HTTP 404; notices without a close control yield
// HTTP 403. A successful dismissal returns HTTP 204.
func (h *Handler) handleNoticeDismiss(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}
	err := h.svc.Dismiss(r.Context(), token)
	switch {
	case errors.Is(err, port.ErrSessionNotFound):
		http.NotFound(w, r)
	case errors.Is(err, port.ErrDismissNotAllowed):
		http.Error(w, "dismissal not permitted", http.StatusForbidden)
	case err != nil:
		h.logger.Error("dismiss error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleNoticeClick records a call-to-action activation and redirects to
// the CTA target. It expects a {token} path parameter bound by the
// router. Unknown tokens result in HTTP 404; a notice without a CTA
// target returns HTTP 204 after closing the session.
func (h *Handler) handleNoticeClick(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}
	target, err := h.svc.Click(r.Context(), token)
	if err != nil {
		h.logger.Error("click error", slog.Any("error", err))
		http.NotFound(w, r)
		return
	}
	if target == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
