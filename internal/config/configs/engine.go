package configs

// Engine holds the notice engine's tunables. PreferredDisplayModes is an
// advisory ranking hint, never a hard filter.
type Engine struct {
	// MaxConcurrentNotices caps how many notices the engine would ever
	// show at once. The engine shows 1, but the candidate pool fetch
	// size is derived from this value.
	MaxConcurrentNotices int `env:"MAX_CONCURRENT_NOTICES" envDefault:"1"`
	// EnableAnalytics toggles view/click recording to the counter
	// service.
	EnableAnalytics bool `env:"ENABLE_ANALYTICS" envDefault:"true"`
	// DailyDisplayLimit caps how many notices a viewer sees per calendar
	// day, independent of per-notice frequency rules.
	DailyDisplayLimit int `env:"DAILY_DISPLAY_LIMIT" envDefault:"3"`
	// PreferredDisplayModes lists display modes favoured when candidates
	// tie on urgency and priority.
	PreferredDisplayModes []string `env:"PREFERRED_DISPLAY_MODES" envDefault:"modal,toast,banner"`
}
