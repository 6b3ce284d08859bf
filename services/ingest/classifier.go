package ingest

import "spray-logger/models"

// Classify returns the records of the given kind in input order, with
// Index renumbered from zero. With dropFirst the leading record of the
// subset is discarded: the controller emits a garbage row of each kind
// when logging starts.
//
// The input slice is never modified.
func Classify(records []models.RawRecord, kind string, dropFirst bool) []models.RawRecord {
	out := make([]models.RawRecord, 0)
	for _, rec := range records {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	if dropFirst && len(out) > 0 {
		out = out[1:]
	}
	for i := range out {
		out[i].Index = i
	}
	return out
}
