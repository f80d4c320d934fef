package port

import (
	"context"

	"arena-notices/internal/core/domain"
)

// NoticeSource is the outbound port to the notice-repository service.
// Implementations return only active definitions, ordered by priority
// descending and truncated to limit.
type NoticeSource interface {
	ListActiveNotices(ctx context.Context, limit int) ([]domain.Notice, error)
}

// CounterService is the outbound port to the engagement counter service.
// Increments are at-least-once; a retried call may double count and the
// engine accepts that.
type CounterService interface {
	IncrementViews(ctx context.Context, noticeID string) error
	IncrementClicks(ctx context.Context, noticeID string) error
	GetCounters(ctx context.Context, noticeID string) (domain.EngagementCounters, error)
}

// KeyValue is a generic persistent key/value store used for frequency
// capping. Get reports ok=false for a missing key. Implementations must
// be safe for concurrent use.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	KeysByPrefix(ctx context.Context, prefix string) ([]string, error)
}

// ViewerStore hands out the key/value namespace belonging to a single
// viewer. Cap keys inside a namespace follow the documented
// last_display::/display_count::/display_total:: schema.
type ViewerStore interface {
	Viewer(viewerID string) KeyValue
}
