package controller

import (
	"slices"
	"time"

	"spray-logger/models"
	"spray-logger/utils"
)

// DefaultTolerance is the widest mission/spray time gap accepted as a match.
const DefaultTolerance = time.Second

// AlignStats counts the outcome of one Align call.
type AlignStats struct {
	Sprays  int
	Matched int
	Gaps    int
}

// AlignmentController attaches the nearest mission position to each spray
// sample. Both streams are sorted by time and merged in a single sweep, so
// alignment is O(n log n) for the sorts and linear for the join.
//
// Matching rules:
//   - candidates are the latest mission at or before the spray time and
//     the earliest mission after it
//   - the smaller absolute gap wins; on a tie the earlier mission wins
//   - the match is kept only if the gap is within tolerance (inclusive)
type AlignmentController struct {
	tolerance time.Duration
	log       *utils.Logger
	stats     AlignStats
	offsets   []time.Duration
}

// NewAlignmentController creates the join stage. A non-positive tolerance
// selects DefaultTolerance.
func NewAlignmentController(tolerance time.Duration, log *utils.Logger) *AlignmentController {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if log == nil {
		log = utils.Discard()
	}
	return &AlignmentController{tolerance: tolerance, log: log}
}

// Tolerance returns the match window in use.
func (ac *AlignmentController) Tolerance() time.Duration {
	return ac.tolerance
}

// Align returns the spray samples in chronological order, each with
// Location set when a mission sample lies within tolerance. Samples with
// a null timestamp sort last and are never matched. The inputs are not
// modified.
func (ac *AlignmentController) Align(missions []models.MissionSample, sprays []models.SpraySample) []models.SpraySample {
	out := make([]models.SpraySample, len(sprays))
	copy(out, sprays)
	slices.SortStableFunc(out, func(a, b models.SpraySample) int {
		return compareTime(a.Time, b.Time)
	})
	for i := range out {
		out[i].Location = nil
	}

	cands := make([]models.MissionSample, 0, len(missions))
	for _, m := range missions {
		if !m.Time.IsZero() {
			cands = append(cands, m)
		}
	}
	slices.SortStableFunc(cands, func(a, b models.MissionSample) int {
		return compareTime(a.Time, b.Time)
	})

	ac.stats = AlignStats{Sprays: len(out)}
	ac.offsets = ac.offsets[:0]

	if len(out) == 0 || len(cands) == 0 {
		ac.stats.Gaps = len(out)
		ac.log.Warn("mission or spray dataset is empty (missions=%d, sprays=%d); cannot add location info",
			len(cands), len(out))
		return out
	}

	// next is the index of the first candidate strictly after the current
	// spray time; it only moves forward because out is sorted.
	next := 0
	for i := range out {
		s := &out[i]
		if s.Time.IsZero() {
			ac.gap(s, "no timestamp")
			continue
		}
		for next < len(cands) && !cands[next].Time.After(s.Time) {
			next++
		}

		best := -1
		var bestGap time.Duration
		if next > 0 {
			best = next - 1
			bestGap = s.Time.Sub(cands[best].Time)
		}
		if next < len(cands) {
			if d := cands[next].Time.Sub(s.Time); best < 0 || d < bestGap {
				best, bestGap = next, d
			}
		}
		if best < 0 || bestGap > ac.tolerance {
			ac.gap(s, "nearest mission sample is "+bestGap.String()+" away")
			continue
		}

		m := &cands[best]
		s.Location = &models.Location{
			Latitude:    m.Latitude,
			Longitude:   m.Longitude,
			Height:      m.Height,
			MissionTime: m.Time,
			Offset:      s.Time.Sub(m.Time),
		}
		ac.stats.Matched++
		ac.offsets = append(ac.offsets, s.Location.Offset)
	}

	ac.log.Info("location info added to %d of %d spray samples (tolerance=%v)",
		ac.stats.Matched, ac.stats.Sprays, ac.tolerance)
	return out
}

func (ac *AlignmentController) gap(s *models.SpraySample, reason string) {
	ac.stats.Gaps++
	ac.log.Warn("spray sample at line %d (%s): %v: %s",
		s.Line, utils.FormatTimestamp(s.Time), utils.ErrAlignmentGap, reason)
}

// Stats returns the counters of the last Align.
func (ac *AlignmentController) Stats() AlignStats {
	return ac.stats
}

// Offsets returns the spray-minus-mission offset of every match made by
// the last Align, in output order.
func (ac *AlignmentController) Offsets() []time.Duration {
	return slices.Clone(ac.offsets)
}

// compareTime orders instants ascending with the zero time last.
func compareTime(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	default:
		return a.Compare(b)
	}
}
