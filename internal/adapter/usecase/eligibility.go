package usecase

import (
	"slices"
	"time"

	"arena-notices/internal/core/domain"
)

// CapSnapshot is a read-only view of a viewer's frequency-cap state,
// taken before selection so the filter itself stays pure.
type CapSnapshot struct {
	ShownToday int
	LastShown  map[string]time.Time
	TotalShown map[string]int
}

// SelectionConfig carries the caller-supplied limits that participate in
// eligibility alongside the per-notice rules.
type SelectionConfig struct {
	DailyDisplayLimit int
	// PreferredModes is advisory: among candidates tied on urgency and
	// priority, preferred display modes rank first. It never rejects.
	PreferredModes []domain.DisplayMode
}

// SelectNotice applies the eligibility rules to a candidate pool and
// returns the single best survivor, or nil. Identical inputs always
// produce the identical choice: ties on urgency and priority resolve by
// preferred display mode, then by notice ID ascending.
func SelectNotice(pool []domain.Notice, viewer domain.ViewerContext, caps CapSnapshot, cfg SelectionConfig) *domain.Notice {
	if cfg.DailyDisplayLimit > 0 && caps.ShownToday >= cfg.DailyDisplayLimit {
		return nil
	}

	now := viewer.Now
	today := truncateToDate(now)

	survivors := make([]domain.Notice, 0, len(pool))
	for _, n := range pool {
		if !n.IsActive || !n.InWindow(now) || !n.MatchesAudience(viewer.IsKnownViewer) {
			continue
		}
		if n.MaxDisplays > 0 && caps.TotalShown[n.ID] >= n.MaxDisplays {
			continue
		}
		if last, shown := caps.LastShown[n.ID]; shown && frequencyViolated(n.Frequency, last, today) {
			continue
		}
		survivors = append(survivors, n)
	}
	if len(survivors) == 0 {
		return nil
	}

	slices.SortStableFunc(survivors, func(a, b domain.Notice) int {
		if d := b.Urgency.Rank() - a.Urgency.Rank(); d != 0 {
			return d
		}
		if d := b.Priority - a.Priority; d != 0 {
			return d
		}
		if d := preferredRank(b.DisplayMode, cfg.PreferredModes) - preferredRank(a.DisplayMode, cfg.PreferredModes); d != 0 {
			return d
		}
		return cmpString(a.ID, b.ID)
	})

	chosen := survivors[0]
	return &chosen
}

// frequencyViolated reports whether showing the notice now would break
// its display-frequency rule, given that it was last shown on last.
func frequencyViolated(f domain.Frequency, last, today time.Time) bool {
	switch f {
	case domain.FrequencyOnce:
		return true
	case domain.FrequencyDaily:
		return domain.DateKey(last) == domain.DateKey(today)
	case domain.FrequencyWeekly:
		// exactly 7 days ago is eligible again; ISO date keys order
		// lexically so calendar comparison is timezone-safe
		return domain.DateKey(last) > domain.DateKey(today.AddDate(0, 0, -7))
	default:
		return false
	}
}

func preferredRank(m domain.DisplayMode, preferred []domain.DisplayMode) int {
	if slices.Contains(preferred, m) {
		return 1
	}
	return 0
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
