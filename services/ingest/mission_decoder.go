package ingest

import (
	"spray-logger/models"
	"spray-logger/utils"
)

// missionFields is the sub-field count of a MISSION_INFO payload:
//
//	flight_mode,arm_status,flight_status,height,speed,climb_rate,heading,latitude,longitude
const missionFields = 9

// MissionDecoder types MISSION_INFO records and keeps only valid samples.
type MissionDecoder struct {
	log   *utils.Logger
	stats DecodeStats
}

// NewMissionDecoder returns a decoder logging to log (discarded when nil).
func NewMissionDecoder(log *utils.Logger) *MissionDecoder {
	if log == nil {
		log = utils.Discard()
	}
	return &MissionDecoder{log: log}
}

// Decode returns the valid samples in input order. Records with the wrong
// number of sub-fields are dropped with a warning; samples holding a
// sentinel or a non-numeric value are excluded (see MissionSample.Valid).
func (d *MissionDecoder) Decode(records []models.RawRecord) []models.MissionSample {
	d.stats = DecodeStats{Input: len(records)}
	out := make([]models.MissionSample, 0, len(records))
	if len(records) == 0 {
		d.log.Warn("no %s records to process", models.KindMission)
		return out
	}

	for i := range records {
		rec := &records[i]
		f, got, ok := splitPayload(rec.Payload, missionFields)
		if !ok {
			d.stats.Malformed++
			d.log.Warn("dropping record: %v", &utils.PayloadError{
				Kind: rec.Kind, Line: rec.Line, Want: missionFields, Got: got,
			})
			continue
		}

		s := models.MissionSample{
			Time:         rec.Time,
			Line:         rec.Line,
			FlightMode:   f[0],
			ArmStatus:    f[1],
			FlightStatus: f[2],
		}
		for j, dst := range []*float64{
			&s.Height, &s.Speed, &s.ClimbRate, &s.Heading, &s.Latitude, &s.Longitude,
		} {
			var numOK bool
			if *dst, numOK = parseNumber(f[3+j]); !numOK {
				d.stats.NumericErrors++
				d.log.Debug("line %d: %v %q", rec.Line, utils.ErrNumericParse, f[3+j])
			}
		}

		if !s.Valid() {
			d.stats.Excluded++
			continue
		}
		out = append(out, s)
	}

	d.stats.Output = len(out)
	d.log.Debug("%s: %d valid of %d (malformed=%d, excluded=%d)",
		models.KindMission, d.stats.Output, d.stats.Input, d.stats.Malformed, d.stats.Excluded)
	return out
}

// Stats returns the counters of the last Decode.
func (d *MissionDecoder) Stats() DecodeStats {
	return d.stats
}
