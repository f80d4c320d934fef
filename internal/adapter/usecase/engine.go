package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"arena-notices/internal/core/domain"
	"arena-notices/internal/core/port"
)

// Config is the construction-time surface of the engine. The engine only
// ever shows one notice per viewer, but the candidate pool fetch size
// derives from MaxConcurrentNotices.
type Config struct {
	MaxConcurrentNotices int
	EnableAnalytics      bool
	DailyDisplayLimit    int
	PreferredModes       []domain.DisplayMode
}

// EngineMetrics receives operational counters from the engine. A nil
// implementation is replaced with a no-op.
type EngineMetrics interface {
	NoticeShown(mode string)
	NoticeClosed(reason string)
	FetchFailure()
	RecordFailure(op string)
}

type noopMetrics struct{}

func (noopMetrics) NoticeShown(string)   {}
func (noopMetrics) NoticeClosed(string)  {}
func (noopMetrics) FetchFailure()        {}
func (noopMetrics) RecordFailure(string) {}

// recordTimeout bounds the fire-and-forget engagement calls so a slow
// counter service cannot outlive the notice's own lifecycle.
const recordTimeout = 5 * time.Second

// NoticeEngine implements port.NoticeUseCase. It fetches candidates,
// runs the eligibility filter, owns the per-viewer display sessions and
// serves performance snapshots.
type NoticeEngine struct {
	notices  port.NoticeSource
	counters port.CounterService
	caps     port.ViewerStore
	cfg      Config
	logger   *slog.Logger
	clk      Clock
	stats    EngineMetrics

	mu       sync.Mutex
	sessions map[string]*displaySession // by token
	active   map[string]string          // viewer id -> token
}

type displaySession struct {
	token    string
	viewerID string
	notice   domain.Notice
	sched    *DisplayScheduler
}

// NewNoticeEngine wires the engine from its outbound ports.
func NewNoticeEngine(notices port.NoticeSource, counters port.CounterService, caps port.ViewerStore, cfg Config, logger *slog.Logger, clk Clock, stats EngineMetrics) *NoticeEngine {
	if cfg.MaxConcurrentNotices < 1 {
		cfg.MaxConcurrentNotices = 1
	}
	if clk == nil {
		clk = NewClock()
	}
	if stats == nil {
		stats = noopMetrics{}
	}
	return &NoticeEngine{
		notices:  notices,
		counters: counters,
		caps:     caps,
		cfg:      cfg,
		logger:   logger,
		clk:      clk,
		stats:    stats,
		sessions: make(map[string]*displaySession),
		active:   make(map[string]string),
	}
}

// RequestNotice evaluates eligibility for the viewer and opens a display
// session for the best candidate. Candidate fetch failure degrades to
// "show nothing"; the error never reaches the viewer.
func (e *NoticeEngine) RequestNotice(ctx context.Context, viewer domain.ViewerContext) (*port.NoticeResponse, error) {
	if viewer.Now.IsZero() {
		viewer.Now = e.clk.Now()
	}

	e.mu.Lock()
	_, busy := e.active[viewer.ViewerID]
	e.mu.Unlock()
	if busy {
		// one notice at a time; no re-evaluation while one is live
		return nil, nil
	}

	pool, err := e.notices.ListActiveNotices(ctx, e.cfg.MaxConcurrentNotices*3)
	if err != nil {
		e.logger.Warn("candidate fetch failed", slog.Any("error", err))
		e.stats.FetchFailure()
		return nil, nil
	}
	if len(pool) == 0 {
		return nil, nil
	}

	caps := e.snapshotCaps(ctx, viewer.ViewerID, viewer.Now, pool)
	chosen := SelectNotice(pool, viewer, caps, SelectionConfig{
		DailyDisplayLimit: e.cfg.DailyDisplayLimit,
		PreferredModes:    e.cfg.PreferredModes,
	})
	if chosen == nil {
		return nil, nil
	}

	token := uuid.NewString()
	sess := &displaySession{token: token, viewerID: viewer.ViewerID, notice: *chosen}
	sess.sched = NewDisplayScheduler(*chosen, e.clk, SchedulerHooks{
		OnVisible: func(n domain.Notice) { e.onVisible(viewer.ViewerID, n) },
		OnClosed:  func(n domain.Notice, reason CloseReason) { e.onClosed(token, reason) },
	})

	e.mu.Lock()
	if _, busy = e.active[viewer.ViewerID]; busy {
		e.mu.Unlock()
		return nil, nil
	}
	e.sessions[token] = sess
	e.active[viewer.ViewerID] = token
	e.mu.Unlock()

	sess.sched.Start()
	e.logger.Debug("display session opened",
		slog.String("token", token),
		slog.String("notice_id", chosen.ID),
		slog.Int("delay_seconds", chosen.DisplayDelay))

	return &port.NoticeResponse{
		Token:            token,
		NoticeID:         chosen.ID,
		Title:            chosen.Title,
		Body:             chosen.Body,
		MediaURL:         chosen.MediaURL,
		CTALabel:         chosen.CTALabel,
		DiscountLabel:    chosen.DiscountLabel,
		DisplayMode:      chosen.DisplayMode,
		DelaySeconds:     chosen.DisplayDelay,
		AutoCloseSeconds: chosen.AutoClose,
		CountdownSeconds: domain.ParseCountdown(chosen.CountdownSpec),
		ShowClose:        chosen.ShowClose,
		ShowProgress:     chosen.ShowProgress,
	}, nil
}

// Dismiss closes a visible notice at the viewer's request.
func (e *NoticeEngine) Dismiss(ctx context.Context, token string) error {
	sess := e.lookup(token)
	if sess == nil {
		return port.ErrSessionNotFound
	}
	return sess.sched.Dismiss()
}

// Click records a call-to-action activation, closes the session and
// returns the CTA target for redirection.
func (e *NoticeEngine) Click(ctx context.Context, token string) (string, error) {
	sess := e.lookup(token)
	if sess == nil {
		return "", port.ErrSessionNotFound
	}
	if e.cfg.EnableAnalytics {
		e.dispatch("click", sess.notice.ID, e.counters.IncrementClicks)
	}
	sess.sched.CloseForClick()
	return sess.notice.CTATarget, nil
}

// GetPerformance derives the performance snapshot from the counter
// service. A counter read failure degrades to an all-zero snapshot.
func (e *NoticeEngine) GetPerformance(ctx context.Context, noticeID string) (*domain.PerformanceSnapshot, error) {
	counters, err := e.counters.GetCounters(ctx, noticeID)
	if err != nil {
		e.logger.Warn("counter read failed", slog.String("notice_id", noticeID), slog.Any("error", err))
		counters = domain.EngagementCounters{}
	}
	snap := counters.Snapshot(noticeID)
	return &snap, nil
}

// Shutdown cancels every live session.
func (e *NoticeEngine) Shutdown() {
	e.mu.Lock()
	open := make([]*displaySession, 0, len(e.sessions))
	for _, s := range e.sessions {
		open = append(open, s)
	}
	e.mu.Unlock()
	for _, s := range open {
		s.sched.Cancel()
	}
}

// snapshotCaps reads the viewer's frequency-cap state for the candidate
// pool. Store read failures are logged and treated as missing records so
// selection still proceeds.
func (e *NoticeEngine) snapshotCaps(ctx context.Context, viewerID string, now time.Time, pool []domain.Notice) CapSnapshot {
	caps := NewFrequencyCaps(e.caps.Viewer(viewerID))
	snap := CapSnapshot{
		LastShown:  make(map[string]time.Time, len(pool)),
		TotalShown: make(map[string]int, len(pool)),
	}
	var err error
	if snap.ShownToday, err = caps.ShownToday(ctx, now); err != nil {
		e.logger.Warn("cap store read failed", slog.Any("error", err))
	}
	for _, n := range pool {
		if last, ok, lerr := caps.LastShown(ctx, n.ID); lerr != nil {
			e.logger.Warn("cap store read failed", slog.String("notice_id", n.ID), slog.Any("error", lerr))
		} else if ok {
			snap.LastShown[n.ID] = last
		}
		if total, terr := caps.TotalShown(ctx, n.ID); terr != nil {
			e.logger.Warn("cap store read failed", slog.String("notice_id", n.ID), slog.Any("error", terr))
		} else if total > 0 {
			snap.TotalShown[n.ID] = total
		}
	}
	return snap
}

// onVisible runs the Visible side effects in order: cap record, daily
// counter, view hook. Recording failures never block the state machine.
func (e *NoticeEngine) onVisible(viewerID string, n domain.Notice) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	caps := NewFrequencyCaps(e.caps.Viewer(viewerID))
	if err := caps.RecordDisplay(ctx, n.ID, e.clk.Now()); err != nil {
		e.logger.Warn("frequency cap write failed", slog.String("notice_id", n.ID), slog.Any("error", err))
	}
	e.stats.NoticeShown(string(n.DisplayMode))
	if e.cfg.EnableAnalytics {
		e.dispatch("view", n.ID, e.counters.IncrementViews)
	}
}

func (e *NoticeEngine) onClosed(token string, reason CloseReason) {
	e.mu.Lock()
	if sess, ok := e.sessions[token]; ok {
		delete(e.sessions, token)
		if e.active[sess.viewerID] == token {
			delete(e.active, sess.viewerID)
		}
	}
	e.mu.Unlock()
	e.stats.NoticeClosed(string(reason))
}

// dispatch fires an engagement call without awaiting it. Failures are
// logged and counted, never retried synchronously.
func (e *NoticeEngine) dispatch(op, noticeID string, call func(context.Context, string) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := call(ctx, noticeID); err != nil {
			e.logger.Warn("engagement recording failed",
				slog.String("op", op),
				slog.String("notice_id", noticeID),
				slog.Any("error", err))
			e.stats.RecordFailure(op)
		}
	}()
}

func (e *NoticeEngine) lookup(token string) *displaySession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[token]
}
