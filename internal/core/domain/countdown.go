package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	countdownHours   = regexp.MustCompile(`(\d+)h`)
	countdownMinutes = regexp.MustCompile(`(\d+)m`)
	countdownSeconds = regexp.MustCompile(`(\d+)s`)
)

// ParseCountdown converts a compact duration string like "2h 30m 15s"
// into total seconds. Each unit is matched independently and a missing
// unit contributes zero, so "45m" and "90s" are valid. Malformed or
// empty input parses to 0, which disables the countdown display.
func ParseCountdown(spec string) int {
	total := 0
	if m := countdownHours.FindStringSubmatch(spec); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 3600
	}
	if m := countdownMinutes.FindStringSubmatch(spec); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n * 60
	}
	if m := countdownSeconds.FindStringSubmatch(spec); m != nil {
		n, _ := strconv.Atoi(m[1])
		total += n
	}
	return total
}

// FormatClock renders remaining seconds for display: "1:02:03" with
// hours, "4:05" with minutes only, "9s" below a minute.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	case m > 0:
		return fmt.Sprintf("%d:%02d", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
