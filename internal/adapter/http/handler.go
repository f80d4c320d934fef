package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"arena-notices/internal/core/port"
	"arena-notices/internal/metrics"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. It holds a NoticeUseCase to execute business logic and a logger
// for structured logging. Routes are registered on a chi.Router.
type Handler struct {
	svc    port.NoticeUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. When m is
// non-nil its middleware and exposition endpoint are mounted.
func NewHandler(svc port.NoticeUseCase, logger *slog.Logger, m *metrics.Metrics) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	if m != nil {
		r.Use(m.Middleware)
		r.Handle("/metrics", m.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/notice/request", h.handleNoticeRequest)
		r.Post("/notice/dismiss/{token}", h.handleNoticeDismiss)
		r.Get("/notice/click/{token}", h.handleNoticeClick)
		r.Get("/stats/performance/{noticeID}", h.handlePerformance)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
