package domain

import "time"

// ViewerContext describes the viewer a notice would be shown to. The HTTP
// layer constructs this struct from request data and passes it into the
// usecase.
type ViewerContext struct {
	ViewerID      string
	IsKnownViewer bool
	Now           time.Time
}

// DateKey formats a time as the calendar-date key used throughout the
// frequency-cap store.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
