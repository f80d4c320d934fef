package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"arena-notices/internal/core/domain"
	"arena-notices/internal/core/port"
)

// Key schema of the frequency-cap store, within a viewer's namespace.
const (
	keyLastDisplay  = "last_display::"
	keyDailyCount   = "display_count::"
	keyTotalCount   = "display_total::"
	capStoreDateFmt = "2006-01-02"
)

// FrequencyCaps wraps a viewer's key/value namespace with the cap-record
// schema. Records are never deleted; stale keys age out by date-key
// rotation and are bounded by one entry per notice plus one per day.
type FrequencyCaps struct {
	kv port.KeyValue
}

// NewFrequencyCaps binds the schema to a viewer namespace.
func NewFrequencyCaps(kv port.KeyValue) *FrequencyCaps {
	return &FrequencyCaps{kv: kv}
}

// LastShown returns the date a notice was last displayed to the viewer.
// ok is false when the notice was never shown. An unparseable stored
// value is treated as absent.
func (f *FrequencyCaps) LastShown(ctx context.Context, noticeID string) (time.Time, bool, error) {
	v, ok, err := f.kv.Get(ctx, keyLastDisplay+noticeID)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(capStoreDateFmt, v)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// ShownToday returns how many notices were displayed to the viewer on
// the given date.
func (f *FrequencyCaps) ShownToday(ctx context.Context, date time.Time) (int, error) {
	return f.readCount(ctx, keyDailyCount+domain.DateKey(date))
}

// TotalShown returns the lifetime display count of a notice for the
// viewer.
func (f *FrequencyCaps) TotalShown(ctx context.Context, noticeID string) (int, error) {
	return f.readCount(ctx, keyTotalCount+noticeID)
}

// RecordDisplay persists the side effects of a notice becoming visible:
// the last-shown date, the daily counter and the lifetime counter. It is
// called only from the scheduler's Visible transition, so there is a
// single writer per viewer at a time.
func (f *FrequencyCaps) RecordDisplay(ctx context.Context, noticeID string, shownAt time.Time) error {
	if err := f.kv.Set(ctx, keyLastDisplay+noticeID, shownAt.Format(capStoreDateFmt)); err != nil {
		return fmt.Errorf("write last display: %w", err)
	}
	if err := f.bumpCount(ctx, keyDailyCount+domain.DateKey(shownAt)); err != nil {
		return fmt.Errorf("bump daily count: %w", err)
	}
	if err := f.bumpCount(ctx, keyTotalCount+noticeID); err != nil {
		return fmt.Errorf("bump total count: %w", err)
	}
	return nil
}

func (f *FrequencyCaps) readCount(ctx context.Context, key string) (int, error) {
	v, ok, err := f.kv.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (f *FrequencyCaps) bumpCount(ctx context.Context, key string) error {
	n, err := f.readCount(ctx, key)
	if err != nil {
		return err
	}
	return f.kv.Set(ctx, key, strconv.Itoa(n+1))
}
