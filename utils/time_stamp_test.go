package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampParser_Parse(t *testing.T) {
	p := NewTimestampParser(nil, nil)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"space separated with millis", "2024-05-01 10:00:00.250", time.Date(2024, 5, 1, 10, 0, 0, 250e6, time.UTC), true},
		{"space separated", "2024-05-01 10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"iso T", "2024-05-01T10:00:00.5", time.Date(2024, 5, 1, 10, 0, 0, 500e6, time.UTC), true},
		{"rfc3339 with zone", "2024-05-01T12:00:00+02:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"slashes", "2024/05/01 10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"slash date month first", "05/01/2024 10:00:00", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"slash date day above 12", "05/13/2024 10:00:00", time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC), true},
		{"slash date day first fallback", "13/05/2024 10:00:00", time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC), true},
		{"unix seconds", "1714557600", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"unix seconds fraction", "1714557600.5", time.Date(2024, 5, 1, 10, 0, 0, 500e6, time.UTC), true},
		{"unix millis", "1714557600250", time.Date(2024, 5, 1, 10, 0, 0, 250e6, time.UTC), true},
		{"padded", "  2024-05-01 10:00:00  ", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not-a-time", time.Time{}, false},
		{"negative epoch", "-5", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestTimestampParser_Location(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	p := NewTimestampParser([]string{"2006-01-02 15:04:05"}, loc)

	got, ok := p.Parse("2024-05-01 15:00:00")
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))

	_, ok = p.Parse("2024/05/01 15:00:00")
	assert.False(t, ok, "only the configured layouts are tried")
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "", FormatTimestamp(time.Time{}))
	assert.Equal(t, "2024-05-01 10:00:00.250",
		FormatTimestamp(time.Date(2024, 5, 1, 10, 0, 0, 250e6, time.UTC)))
}

func TestSessionName(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 2, 3, 0, time.UTC)
	assert.Equal(t, "flight_20240501_100203", SessionName("flight", now))
}
