package models

import "time"

// Location is the vehicle position borrowed from the nearest mission sample.
type Location struct {
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Height      float64       `json:"height"`
	MissionTime time.Time     `json:"mission_time"`
	Offset      time.Duration `json:"offset"` // spray time minus mission time
}

// SpraySample is one decoded SPRAY_INFO record. Location is nil until the
// aligner finds a mission sample within tolerance.
type SpraySample struct {
	Time           time.Time `json:"time"`
	Line           int       `json:"line"`
	SprayStatus    float64   `json:"spray_status"`
	PumpPWM        float64   `json:"pump_pwm"`
	NozzlePWM      float64   `json:"nozzle_pwm"`
	ReqFlowrate    float64   `json:"req_flowrate"`
	ActualFlowrate float64   `json:"actual_flowrate"`
	FlowmeterPulse float64   `json:"flowmeter_pulse"`
	PayloadRem     float64   `json:"payload_rem"`
	AreaSprayed    float64   `json:"area_sprayed"`
	ReqDosage      float64   `json:"req_dosage"`
	ActualDosage   float64   `json:"actual_dosage"`
	PrvWP          float64   `json:"prv_wp"`
	NextWP         float64   `json:"next_wp"`
	Location       *Location `json:"location,omitempty"`
}

// Located reports whether the aligner attached a position.
func (s *SpraySample) Located() bool { return s.Location != nil }

func (SpraySample) CSVHeader() []string {
	return []string{
		"timestamp",
		"spray_status", "pump_pwm", "nozzle_pwm",
		"req_flowrate", "actual_flowrate", "flowmeter_pulse",
		"payload_rem", "area_sprayed", "req_dosage", "actual_dosage",
		"prv_wp", "next_wp",
		"latitude", "longitude", "height", "offset_ms",
	}
}

// CSVRow leaves the location columns empty for unaligned samples.
func (s *SpraySample) CSVRow() []string {
	row := []string{
		ttoa(s.Time),
		ftoa(s.SprayStatus, -1), ftoa(s.PumpPWM, -1), ftoa(s.NozzlePWM, -1),
		ftoa(s.ReqFlowrate, -1), ftoa(s.ActualFlowrate, -1), ftoa(s.FlowmeterPulse, -1),
		ftoa(s.PayloadRem, -1), ftoa(s.AreaSprayed, -1), ftoa(s.ReqDosage, -1), ftoa(s.ActualDosage, -1),
		ftoa(s.PrvWP, -1), ftoa(s.NextWP, -1),
	}
	if s.Location != nil {
		row = append(row,
			ftoa(s.Location.Latitude, 7), ftoa(s.Location.Longitude, 7),
			ftoa(s.Location.Height, 2), itoa(int(s.Location.Offset.Milliseconds())))
	} else {
		row = append(row, "", "", "", "")
	}
	return row
}
