package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena-notices/internal/core/domain"
	"arena-notices/internal/core/port"
)

type stubUseCase struct {
	resp        *port.NoticeResponse
	requestErr  error
	dismissErr  error
	clickTarget string
	clickErr    error
	snapshot    domain.PerformanceSnapshot
}

func (s *stubUseCase) RequestNotice(context.Context, domain.ViewerContext) (*port.NoticeResponse, error) {
	return s.resp, s.requestErr
}

func (s *stubUseCase) Dismiss(context.Context, string) error {
	return s.dismissErr
}

func (s *stubUseCase) Click(context.Context, string) (string, error) {
	return s.clickTarget, s.clickErr
}

func (s *stubUseCase) GetPerformance(_ context.Context, noticeID string) (*domain.PerformanceSnapshot, error) {
	snap := s.snapshot
	snap.NoticeID = noticeID
	return &snap, nil
}

func testHandler(svc port.NoticeUseCase) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(svc, logger, nil).Router()
}

func TestHandleNoticeRequest(t *testing.T) {
	svc := &stubUseCase{resp: &port.NoticeResponse{Token: "tok", NoticeID: "n1", Title: "Spring tryouts"}}
	h := testHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notice/request", strings.NewReader(`{"viewer_id":"v1","is_known_viewer":true}`))
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got port.NoticeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "n1", got.NoticeID)
}

func TestHandleNoticeRequestNoContent(t *testing.T) {
	h := testHandler(&stubUseCase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notice/request", strings.NewReader(`{"viewer_id":"v1"}`))
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleNoticeRequestBadJSON(t *testing.T) {
	h := testHandler(&stubUseCase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notice/request", strings.NewReader(`{`))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/notice/request", strings.NewReader(`{}`))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "viewer_id is required")
}

func TestHandleNoticeDismiss(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusNoContent},
		{"unknown token", port.ErrSessionNotFound, http.StatusNotFound},
		{"no close control", port.ErrDismissNotAllowed, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testHandler(&stubUseCase{dismissErr: tc.err})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/notice/dismiss/tok", nil)
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestHandleNoticeClickRedirects(t *testing.T) {
	h := testHandler(&stubUseCase{clickTarget: "https://example.com/offers/1"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notice/click/tok", nil)
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/offers/1", rec.Header().Get("Location"))
}

func TestHandleNoticeClickNoTarget(t *testing.T) {
	h := testHandler(&stubUseCase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notice/click/tok", nil)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandleNoticeClickUnknownToken(t *testing.T) {
	h := testHandler(&stubUseCase{clickErr: port.ErrSessionNotFound})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notice/click/tok", nil)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePerformance(t *testing.T) {
	h := testHandler(&stubUseCase{snapshot: domain.PerformanceSnapshot{
		Views: 200, Clicks: 12, CTR: 6, ROI: 275, Tier: domain.TierExcellent,
	}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/performance/n1", nil)
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap domain.PerformanceSnapshot
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Equal(t, "n1", snap.NoticeID)
	assert.Equal(t, domain.TierExcellent, snap.Tier)
	assert.InDelta(t, 6.0, snap.CTR, 1e-9)
}
