package ingest

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spray-logger/models"
	"spray-logger/utils"
)

func missionRec(line int, payload string) models.RawRecord {
	return models.RawRecord{
		Line:    line,
		Time:    time.Date(2024, 5, 1, 10, 0, line, 0, time.UTC),
		Kind:    models.KindMission,
		Payload: payload,
	}
}

func TestMissionDecoder_Decode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		keep    bool
	}{
		{"valid", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,87,12.97,77.59", true},
		{"spaces around fields", " AUTO , ARMED , IN_AIR , 3.5 , 4.2 , 0.1 , 87 , 12.97 , 77.59 ", true},
		{"height no data", "AUTO,ARMED,IN_AIR,-100,4.2,0.1,87,12.97,77.59", false},
		{"speed no data", "AUTO,ARMED,IN_AIR,3.5,-100.0,0.1,87,12.97,77.59", false},
		{"climb rate no data", "AUTO,ARMED,IN_AIR,3.5,4.2,-100,87,12.97,77.59", false},
		{"heading no data", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,-100.00,12.97,77.59", false},
		{"latitude no gps", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,87,-200,77.59", false},
		{"longitude no gps", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,87,12.97,-200.0", false},
		{"non-numeric height", "AUTO,ARMED,IN_AIR,abc,4.2,0.1,87,12.97,77.59", false},
		{"empty latitude", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,87,,77.59", false},
		{"eight fields", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,87,12.97", false},
		{"ten fields", "AUTO,ARMED,IN_AIR,3.5,4.2,0.1,87,12.97,77.59,1", false},
		{"empty payload", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMissionDecoder(nil).Decode([]models.RawRecord{missionRec(1, tt.payload)})
			if tt.keep {
				require.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestMissionDecoder_Fields(t *testing.T) {
	rec := missionRec(7, "LOITER, ARMED ,LANDED,3.5,4.25,-0.5,270,12.9716,77.5946")
	got := NewMissionDecoder(nil).Decode([]models.RawRecord{rec})
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, rec.Time, s.Time)
	assert.Equal(t, 7, s.Line)
	assert.Equal(t, "LOITER", s.FlightMode)
	assert.Equal(t, "ARMED", s.ArmStatus)
	assert.Equal(t, "LANDED", s.FlightStatus)
	assert.Equal(t, 3.5, s.Height)
	assert.Equal(t, 4.25, s.Speed)
	assert.Equal(t, -0.5, s.ClimbRate)
	assert.Equal(t, 270.0, s.Heading)
	assert.InDelta(t, 12.9716, s.Latitude, 1e-9)
	assert.InDelta(t, 77.5946, s.Longitude, 1e-9)
}

func TestMissionDecoder_OrderAndStats(t *testing.T) {
	recs := []models.RawRecord{
		missionRec(1, "AUTO,ARMED,IN_AIR,1,1,1,1,1,1"),
		missionRec(2, "AUTO,ARMED,IN_AIR,-100,1,1,1,1,1"),
		missionRec(3, "AUTO,ARMED,IN_AIR,1,1,1"),
		missionRec(4, "AUTO,ARMED,IN_AIR,x,1,1,1,1,1"),
		missionRec(5, "AUTO,ARMED,IN_AIR,2,2,2,2,2,2"),
	}
	d := NewMissionDecoder(nil)
	got := d.Decode(recs)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 5, got[1].Line)
	assert.Equal(t, DecodeStats{Input: 5, Malformed: 1, NumericErrors: 1, Excluded: 2, Output: 2}, d.Stats())
}

func TestMissionDecoder_Empty(t *testing.T) {
	var buf bytes.Buffer
	log, err := utils.NewLogger(utils.LoggerOptions{Output: &buf})
	require.NoError(t, err)

	got := NewMissionDecoder(log).Decode(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "no MISSION_INFO records to process")
}

func TestMissionDecoder_MalformedWarns(t *testing.T) {
	var buf bytes.Buffer
	log, err := utils.NewLogger(utils.LoggerOptions{Output: &buf})
	require.NoError(t, err)

	NewMissionDecoder(log).Decode([]models.RawRecord{missionRec(12, "AUTO,ARMED")})
	assert.Contains(t, buf.String(), "MISSION_INFO at line 12: expected 9 fields, got 2")
}

func TestParseNumber(t *testing.T) {
	v, ok := parseNumber("1e3")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)

	for _, s := range []string{"", "abc", "NaN", "1,5"} {
		v, ok := parseNumber(s)
		assert.False(t, ok, s)
		assert.True(t, math.IsNaN(v), s)
	}
}

func TestParseNumber_OutOfRange(t *testing.T) {
	v, ok := parseNumber("1e400")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, 1))

	v, ok = parseNumber("-1e400")
	assert.True(t, ok)
	assert.True(t, math.IsInf(v, -1))

	v, ok = parseNumber("1e-400")
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestMissionDecoder_KeepsOverflow(t *testing.T) {
	got := NewMissionDecoder(nil).Decode([]models.RawRecord{
		missionRec(1, "AUTO,ARMED,IN_AIR,1e400,4.2,0.1,87,12.97,77.59"),
	})
	require.Len(t, got, 1)
	assert.True(t, math.IsInf(got[0].Height, 1))
}
