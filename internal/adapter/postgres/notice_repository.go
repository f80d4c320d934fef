package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arena-notices/internal/core/domain"
)

// NoticeRepository implements port.NoticeSource and port.CounterService
// against PostgreSQL. Notice definitions and their engagement counters
// live in one table; counter increments are blind single-statement
// updates because the contract is at-least-once.
type NoticeRepository struct {
	pool *pgxpool.Pool
}

// NewNoticeRepository returns a new repository instance.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

// ListActiveNotices returns active notice definitions ordered by
// priority descending, truncated to limit.
func (r *NoticeRepository) ListActiveNotices(ctx context.Context, limit int) ([]domain.Notice, error) {
	query := `
        SELECT
            id,
            title,
            body,
            media_url,
            cta_label,
            cta_target,
            is_active,
            priority,
            urgency,
            audience,
            start_date,
            end_date,
            display_mode,
            display_delay,
            frequency,
            max_displays,
            show_close,
            auto_close,
            show_progress,
            countdown_spec,
            discount_label,
            created_at,
            updated_at
        FROM notices
        WHERE is_active
        ORDER BY priority DESC
        LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notice, error) {
		var n domain.Notice
		err := row.Scan(
			&n.ID,
			&n.Title,
			&n.Body,
			&n.MediaURL,
			&n.CTALabel,
			&n.CTATarget,
			&n.IsActive,
			&n.Priority,
			&n.Urgency,
			&n.Audience,
			&n.StartDate,
			&n.EndDate,
			&n.DisplayMode,
			&n.DisplayDelay,
			&n.Frequency,
			&n.MaxDisplays,
			&n.ShowClose,
			&n.AutoClose,
			&n.ShowProgress,
			&n.CountdownSpec,
			&n.DiscountLabel,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		return n, err
	})
}

// IncrementViews bumps the view counter for a notice.
func (r *NoticeRepository) IncrementViews(ctx context.Context, noticeID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE notices SET views = views + 1 WHERE id = $1`, noticeID)
	return err
}

// IncrementClicks bumps the click counter for a notice.
func (r *NoticeRepository) IncrementClicks(ctx context.Context, noticeID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE notices SET clicks = clicks + 1 WHERE id = $1`, noticeID)
	return err
}

// GetCounters reads the engagement counters for a notice. An unknown id
// reads as all-zero counters rather than an error.
func (r *NoticeRepository) GetCounters(ctx context.Context, noticeID string) (domain.EngagementCounters, error) {
	var c domain.EngagementCounters
	err := r.pool.QueryRow(ctx,
		`SELECT views, clicks, revenue, cost FROM notices WHERE id = $1`, noticeID).
		Scan(&c.Views, &c.Clicks, &c.Revenue, &c.Cost)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EngagementCounters{}, nil
	}
	return c, err
}
