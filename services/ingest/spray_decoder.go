package ingest

import (
	"spray-logger/models"
	"spray-logger/utils"
)

// sprayFields is the sub-field count of a SPRAY_INFO payload:
//
//	spray_status,pump_pwm,nozzle_pwm,req_flowrate,actual_flowrate,flowmeter_pulse,
//	payload_rem,area_sprayed,req_dosage,actual_dosage,prv_wp,next_wp
const sprayFields = 12

// SprayDecoder types SPRAY_INFO records. There is no validity filter:
// non-numeric values stay in the sample as NaN.
type SprayDecoder struct {
	log   *utils.Logger
	stats DecodeStats
}

// NewSprayDecoder returns a decoder logging to log (discarded when nil).
func NewSprayDecoder(log *utils.Logger) *SprayDecoder {
	if log == nil {
		log = utils.Discard()
	}
	return &SprayDecoder{log: log}
}

// Decode returns one sample per well-formed record, in input order.
func (d *SprayDecoder) Decode(records []models.RawRecord) []models.SpraySample {
	d.stats = DecodeStats{Input: len(records)}
	out := make([]models.SpraySample, 0, len(records))
	if len(records) == 0 {
		d.log.Warn("no %s records to process", models.KindSpray)
		return out
	}

	for i := range records {
		rec := &records[i]
		f, got, ok := splitPayload(rec.Payload, sprayFields)
		if !ok {
			d.stats.Malformed++
			d.log.Warn("dropping record: %v", &utils.PayloadError{
				Kind: rec.Kind, Line: rec.Line, Want: sprayFields, Got: got,
			})
			continue
		}

		s := models.SpraySample{Time: rec.Time, Line: rec.Line}
		for j, dst := range []*float64{
			&s.SprayStatus, &s.PumpPWM, &s.NozzlePWM,
			&s.ReqFlowrate, &s.ActualFlowrate, &s.FlowmeterPulse,
			&s.PayloadRem, &s.AreaSprayed, &s.ReqDosage, &s.ActualDosage,
			&s.PrvWP, &s.NextWP,
		} {
			var numOK bool
			if *dst, numOK = parseNumber(f[j]); !numOK {
				d.stats.NumericErrors++
				d.log.Debug("line %d: %v %q", rec.Line, utils.ErrNumericParse, f[j])
			}
		}
		out = append(out, s)
	}

	d.stats.Output = len(out)
	return out
}

// Stats returns the counters of the last Decode.
func (d *SprayDecoder) Stats() DecodeStats {
	return d.stats
}
