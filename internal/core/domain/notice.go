package domain

import (
	"errors"
	"time"
)

// Urgency ranks how prominently a notice should compete for the single
// display slot. It dominates Priority when ordering candidates.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Rank maps an urgency to its ordering weight. Unknown values rank as
// medium, mirroring the default applied when definitions omit the field.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyLow:
		return 1
	default:
		return 2
	}
}

// Audience restricts which viewers a notice targets.
type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceNew       Audience = "new_viewers"
	AudienceReturning Audience = "returning_viewers"
)

// Frequency is the per-notice display frequency cap.
type Frequency string

const (
	FrequencyOnce   Frequency = "once"
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyAlways Frequency = "always"
)

// DisplayMode is the presentation surface a notice asks for. The engine
// never renders; the mode only participates in advisory ranking and is
// passed through to the host.
type DisplayMode string

const (
	DisplayModal     DisplayMode = "modal"
	DisplayToast     DisplayMode = "toast"
	DisplayBanner    DisplayMode = "banner"
	DisplaySidePanel DisplayMode = "side-panel"
)

// Notice is a promotional message candidate. Revenue and cost on the
// associated counters are integer cents.
type Notice struct {
	ID            string
	Title         string
	Body          string
	MediaURL      string
	CTALabel      string
	CTATarget     string
	IsActive      bool
	Priority      int
	Urgency       Urgency
	Audience      Audience
	StartDate     *time.Time
	EndDate       *time.Time
	DisplayMode   DisplayMode
	DisplayDelay  int // seconds before the notice becomes visible
	Frequency     Frequency
	MaxDisplays   int // lifetime cap per viewer, 0 = unlimited
	ShowClose     bool
	AutoClose     int // seconds until auto-close, 0 = disabled
	ShowProgress  bool
	CountdownSpec string
	DiscountLabel string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var (
	ErrEmptyID          = errors.New("notice id is empty")
	ErrNegativePriority = errors.New("notice priority is negative")
	ErrWindowInverted   = errors.New("notice start date is after end date")
)

// Validate checks the structural invariants of a notice definition.
func (n *Notice) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if n.Priority < 0 {
		return ErrNegativePriority
	}
	if n.StartDate != nil && n.EndDate != nil && n.StartDate.After(*n.EndDate) {
		return ErrWindowInverted
	}
	return nil
}

// InWindow reports whether the notice's date window contains now. A
// missing bound is open on that side.
func (n *Notice) InWindow(now time.Time) bool {
	if n.StartDate != nil && now.Before(*n.StartDate) {
		return false
	}
	if n.EndDate != nil && now.After(*n.EndDate) {
		return false
	}
	return true
}

// MatchesAudience reports whether the notice targets the given viewer.
func (n *Notice) MatchesAudience(isKnownViewer bool) bool {
	switch n.Audience {
	case AudienceNew:
		return !isKnownViewer
	case AudienceReturning:
		return isKnownViewer
	default:
		return true
	}
}
