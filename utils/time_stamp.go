package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultTimestampLayouts is the order in which log timestamps are tried.
// Fractional seconds are accepted after the seconds field by every layout.
// Slash dates are month-first; day-first is only tried when the month-first
// reading is impossible (day above 12).
var DefaultTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"01/02/2006 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04",
}

// CSVTimeLayout is used when timestamps are written back out.
const CSVTimeLayout = "2006-01-02 15:04:05.000"

// TimestampParser turns the raw timestamp column into an instant.
// Layouts without a zone are interpreted in loc.
type TimestampParser struct {
	layouts []string
	loc     *time.Location
}

// NewTimestampParser returns a parser for the given layouts; an empty list
// selects DefaultTimestampLayouts and a nil location selects UTC.
func NewTimestampParser(layouts []string, loc *time.Location) *TimestampParser {
	if len(layouts) == 0 {
		layouts = DefaultTimestampLayouts
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TimestampParser{layouts: layouts, loc: loc}
}

// Parse returns the instant for s. ok is false when nothing matched; the
// returned time is then the zero value, which the pipeline treats as null.
//
// Bare numbers are Unix epochs: values above 1e12 are milliseconds,
// anything smaller is seconds (with optional fraction).
func (p *TimestampParser) Parse(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range p.layouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return time.Time{}, false
	}
	if v > 1e12 {
		return time.UnixMilli(int64(v)).In(p.loc), true
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).In(p.loc), true
}

// FormatTimestamp renders t for exports; the zero time renders empty.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(CSVTimeLayout)
}

// SessionName returns a unique export directory name:
//
//	<prefix>_YYYYMMDD_HHMMSS
func SessionName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s", prefix, now.Format("20060102_150405"))
}
