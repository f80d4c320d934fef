package domain

// EngagementCounters are the per-notice tallies owned by the counter
// service. Revenue and cost are integer cents. Counters only ever grow,
// short of administrative correction.
type EngagementCounters struct {
	Views   int64
	Clicks  int64
	Revenue int64
	Cost    int64
}

// Tier is the discrete performance classification of a notice.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"
)

// PerformanceSnapshot is derived from counters on demand and never
// stored. CTR and ROI are percentages.
type PerformanceSnapshot struct {
	NoticeID string  `json:"notice_id"`
	Views    int64   `json:"views"`
	Clicks   int64   `json:"clicks"`
	CTR      float64 `json:"ctr"`
	ROI      float64 `json:"roi"`
	Tier     Tier    `json:"tier"`
}

// ClickThroughRate returns clicks/views as a percentage, 0 when there
// are no views.
func (c EngagementCounters) ClickThroughRate() float64 {
	if c.Views <= 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Views) * 100
}

// ReturnOnInvestment returns (revenue-cost)/cost as a percentage, 0 when
// cost is zero.
func (c EngagementCounters) ReturnOnInvestment() float64 {
	if c.Cost == 0 {
		return 0
	}
	return float64(c.Revenue-c.Cost) / float64(c.Cost) * 100
}

// Classify assigns a performance tier from CTR and ROI. Rules are
// evaluated top-down, first match wins.
func Classify(ctr, roi float64) Tier {
	switch {
	case ctr > 5 && roi > 200:
		return TierExcellent
	case ctr > 3 && roi > 100:
		return TierGood
	case ctr > 1 && roi > 0:
		return TierAverage
	default:
		return TierPoor
	}
}

// Snapshot computes the full derived view for a notice.
func (c EngagementCounters) Snapshot(noticeID string) PerformanceSnapshot {
	ctr := c.ClickThroughRate()
	roi := c.ReturnOnInvestment()
	return PerformanceSnapshot{
		NoticeID: noticeID,
		Views:    c.Views,
		Clicks:   c.Clicks,
		CTR:      ctr,
		ROI:      roi,
		Tier:     Classify(ctr, roi),
	}
}
