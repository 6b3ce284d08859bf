package utils

import (
	"errors"
	"fmt"
)

// Error taxonomy for the log pipeline. Only ErrFileAccess and
// ErrInvalidConfig ever reach a caller; the rest are recovered inside the
// pipeline and surface as counters and warnings.
var (
	ErrFileAccess       = errors.New("log file not accessible")
	ErrMalformedLine    = errors.New("malformed log line")
	ErrMalformedPayload = errors.New("malformed record payload")
	ErrNumericParse     = errors.New("non-numeric field value")
	ErrAlignmentGap     = errors.New("no mission sample within tolerance")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Wrap annotates err following the pattern
// "component.method: action failed: %w". A nil err stays nil.
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// PayloadError describes a record whose payload had the wrong number of
// sub-fields.
type PayloadError struct {
	Kind string
	Line int
	Want int
	Got  int
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s at line %d: expected %d fields, got %d", e.Kind, e.Line, e.Want, e.Got)
}

func (e *PayloadError) Unwrap() error { return ErrMalformedPayload }
