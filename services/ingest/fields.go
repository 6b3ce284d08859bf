package ingest

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// splitPayload splits a payload into exactly n trimmed sub-fields.
// got is the actual count when it differs from n.
func splitPayload(payload string, n int) (fields []string, got int, ok bool) {
	fields = strings.Split(payload, ",")
	if len(fields) != n {
		return nil, len(fields), false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, n, true
}

// parseNumber converts a trimmed sub-field to float64. Anything that is
// not a finite-or-infinite decimal number becomes NaN with ok=false.
// Out-of-range values saturate to ±Inf (or 0 on underflow) and are kept.
func parseNumber(s string) (v float64, ok bool) {
	v, err := strconv.ParseFloat(s, 64)
	if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(v) {
		return math.NaN(), false
	}
	return v, true
}

// DecodeStats counts the outcome of one decode pass.
type DecodeStats struct {
	Input         int
	Malformed     int // wrong number of payload sub-fields
	NumericErrors int // sub-fields that became NaN
	Excluded      int // failed the validity filter
	Output        int
}
