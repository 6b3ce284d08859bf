package models

import "time"

// Record kinds understood by the pipeline.
const (
	KindMission = "MISSION_INFO"
	KindSpray   = "SPRAY_INFO"
)

// RawRecord is one accepted log line split into its five columns:
//
//	timestamp,module,severity,kind,payload...
//
// Payload keeps any further commas; it is split by the kind-specific decoder.
type RawRecord struct {
	Index     int       `json:"index"` // position within the owning sequence
	Line      int       `json:"line"`  // 1-based source line
	Timestamp string    `json:"timestamp"`
	Time      time.Time `json:"time"` // zero when Timestamp did not parse
	Module    string    `json:"module"`
	Severity  string    `json:"severity"`
	Kind      string    `json:"kind"`
	Payload   string    `json:"payload"`
}

// HasTime reports whether the timestamp column parsed to an instant.
func (r *RawRecord) HasTime() bool { return !r.Time.IsZero() }

func (RawRecord) CSVHeader() []string {
	return []string{"line", "timestamp", "module", "severity", "kind", "payload"}
}

func (r *RawRecord) CSVRow() []string {
	ts := ttoa(r.Time)
	if ts == "" {
		ts = r.Timestamp
	}
	return []string{itoa(r.Line), ts, r.Module, r.Severity, r.Kind, r.Payload}
}
