package models

import (
	"math"
	"time"
)

// Sentinels written by the flight controller when it has no data.
const (
	SentinelNoData float64 = -100.0 // height, speed, climb rate, heading
	SentinelNoGPS  float64 = -200   // latitude, longitude
)

// MissionSample is one decoded MISSION_INFO record.
type MissionSample struct {
	Time         time.Time `json:"time"`
	Line         int       `json:"line"`
	FlightMode   string    `json:"flight_mode"`
	ArmStatus    string    `json:"arm_status"`
	FlightStatus string    `json:"flight_status"`
	Height       float64   `json:"height"`     // m
	Speed        float64   `json:"speed"`      // m/s
	ClimbRate    float64   `json:"climb_rate"` // m/s
	Heading      float64   `json:"heading"`    // degrees
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
}

// Valid reports whether the sample carries real telemetry. A sentinel or a
// non-numeric (NaN) value in any numeric field makes the sample invalid.
func (m *MissionSample) Valid() bool {
	for _, v := range []float64{m.Height, m.Speed, m.ClimbRate, m.Heading} {
		if math.IsNaN(v) || v == SentinelNoData {
			return false
		}
	}
	for _, v := range []float64{m.Latitude, m.Longitude} {
		if math.IsNaN(v) || v == SentinelNoGPS {
			return false
		}
	}
	return true
}

func (MissionSample) CSVHeader() []string {
	return []string{
		"timestamp", "flight_mode", "arm_status", "flight_status",
		"height", "speed", "climb_rate", "heading", "latitude", "longitude",
	}
}

func (m *MissionSample) CSVRow() []string {
	return []string{
		ttoa(m.Time),
		m.FlightMode, m.ArmStatus, m.FlightStatus,
		ftoa(m.Height, 2), ftoa(m.Speed, 2), ftoa(m.ClimbRate, 2), ftoa(m.Heading, 2),
		ftoa(m.Latitude, 7), ftoa(m.Longitude, 7),
	}
}
