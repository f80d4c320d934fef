package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo notice definitions with plausible engagement
// counters so the performance dashboard has data to classify.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	urgencies := []string{"low", "medium", "high", "critical"}
	audiences := []string{"all", "new_viewers", "returning_viewers"}
	frequencies := []string{"once", "daily", "weekly", "always"}
	modes := []string{"modal", "toast", "banner", "side-panel"}

	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("notice-%03d", i)
		title := fmt.Sprintf("Season promo %d", i)
		body := fmt.Sprintf("Limited offer %d for academy members", i)
		start := time.Now().AddDate(0, 0, -1)
		end := time.Now().AddDate(0, 1, 0)
		views := int64(r.Intn(5000) + 100)
		clicks := int64(r.Intn(int(views)/10 + 1))
		cost := int64(r.Intn(50000) + 1000) // cents
		revenue := cost + int64(r.Intn(150000)) - 25000

		_, err := db.Exec(ctx, `INSERT INTO notices
    (id, title, body, cta_label, cta_target, is_active, priority, urgency, audience,
     start_date, end_date, display_mode, display_delay, frequency, max_displays,
     show_close, auto_close, show_progress, countdown_spec, discount_label,
     views, clicks, revenue, cost, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,now(),now())
ON CONFLICT DO NOTHING`,
			id, title, body, "Join now", fmt.Sprintf("https://example.com/offers/%d", i),
			true, r.Intn(20), urgencies[r.Intn(len(urgencies))], audiences[r.Intn(len(audiences))],
			start, end, modes[r.Intn(len(modes))], r.Intn(5)+1, frequencies[r.Intn(len(frequencies))], r.Intn(4),
			true, r.Intn(15), r.Intn(2) == 0, "2h 30m", fmt.Sprintf("%d%% off", (r.Intn(5)+1)*10),
			views, clicks, revenue, cost)
		if err != nil {
			return err
		}
	}
	return nil
}
