package port

import (
	"context"
	"errors"

	"arena-notices/internal/core/domain"
)

var (
	// ErrSessionNotFound is returned when a display token does not map to
	// a live session.
	ErrSessionNotFound = errors.New("display session not found")
	// ErrDismissNotAllowed is returned when a viewer dismisses a notice
	// whose definition hides the close control.
	ErrDismissNotAllowed = errors.New("notice does not permit dismissal")
)

// NoticeUseCase is the primary port into the notice engine. All failure
// modes short of a bad token degrade to "no notice shown".
type NoticeUseCase interface {
	// RequestNotice evaluates eligibility for the viewer and, when a
	// candidate survives, opens a display session that will become
	// visible after the notice's configured delay. It returns nil when
	// nothing is eligible or a session is already live for the viewer.
	RequestNotice(ctx context.Context, viewer domain.ViewerContext) (*NoticeResponse, error)

	// Dismiss closes a visible notice at the viewer's request. It is a
	// no-op for sessions that already closed.
	Dismiss(ctx context.Context, token string) error

	// Click records a call-to-action activation, closes the session and
	// returns the CTA target for redirection.
	Click(ctx context.Context, token string) (string, error)

	// GetPerformance reads the notice's engagement counters and derives
	// its performance snapshot.
	GetPerformance(ctx context.Context, noticeID string) (*domain.PerformanceSnapshot, error)
}

// NoticeResponse describes a scheduled display session to the host. It
// is a DTO used by the HTTP layer and carries no domain behaviour.
type NoticeResponse struct {
	Token            string             `json:"token"`
	NoticeID         string             `json:"notice_id"`
	Title            string             `json:"title"`
	Body             string             `json:"body"`
	MediaURL         string             `json:"media_url,omitempty"`
	CTALabel         string             `json:"cta_label,omitempty"`
	DiscountLabel    string             `json:"discount_label,omitempty"`
	DisplayMode      domain.DisplayMode `json:"display_mode"`
	DelaySeconds     int                `json:"delay_seconds"`
	AutoCloseSeconds int                `json:"auto_close_seconds,omitempty"`
	CountdownSeconds int                `json:"countdown_seconds,omitempty"`
	ShowClose        bool               `json:"show_close"`
	ShowProgress     bool               `json:"show_progress"`
}
