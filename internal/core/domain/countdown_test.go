package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCountdown(t *testing.T) {
	cases := []struct {
		spec string
		want int
	}{
		{"2h 30m 15s", 9015},
		{"45m", 2700},
		{"90s", 90},
		{"1h", 3600},
		{"1h 5s", 3605},
		{"", 0},
		{"garbage", 0},
		{"h m s", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseCountdown(tc.spec), "spec %q", tc.spec)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "2:30:15", FormatClock(9015))
	assert.Equal(t, "45:00", FormatClock(2700))
	assert.Equal(t, "1:30", FormatClock(90))
	assert.Equal(t, "59s", FormatClock(59))
	assert.Equal(t, "0s", FormatClock(0))
	assert.Equal(t, "0s", FormatClock(-5))
}
