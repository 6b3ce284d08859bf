package models

import (
	"math"
	"strconv"
	"time"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string { return strconv.Itoa(v) }

// ftoa renders NaN (a field that failed numeric parsing) as an empty cell.
func ftoa(v float64, prec int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func ttoa(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05.000")
}

// CSVRowWriter is the interface every exported model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}

// Named is implemented by objects that report a type tag for diagnostics.
type Named interface {
	Tag() string
}

// Disposable is implemented by objects that own resources released as a unit.
type Disposable interface {
	Close() error
}
