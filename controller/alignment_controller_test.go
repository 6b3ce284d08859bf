package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spray-logger/models"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return t0.Add(d) }

func mission(ts time.Time, lat float64) models.MissionSample {
	return models.MissionSample{Time: ts, Latitude: lat, Longitude: lat + 60, Height: lat / 10}
}

func spray(ts time.Time, line int) models.SpraySample {
	return models.SpraySample{Time: ts, Line: line}
}

func TestAlign_NearestWithinTolerance(t *testing.T) {
	missions := []models.MissionSample{mission(at(0), 10), mission(at(10*time.Second), 20)}
	sprays := []models.SpraySample{spray(at(400*time.Millisecond), 1), spray(at(5*time.Second), 2)}

	ac := NewAlignmentController(0, nil)
	got := ac.Align(missions, sprays)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Location)
	assert.Equal(t, 10.0, got[0].Location.Latitude)
	assert.Equal(t, 70.0, got[0].Location.Longitude)
	assert.Equal(t, 1.0, got[0].Location.Height)
	assert.Equal(t, at(0), got[0].Location.MissionTime)
	assert.Equal(t, 400*time.Millisecond, got[0].Location.Offset)

	assert.Nil(t, got[1].Location, "5s from either mission sample")
	assert.Equal(t, AlignStats{Sprays: 2, Matched: 1, Gaps: 1}, ac.Stats())
	assert.Equal(t, []time.Duration{400 * time.Millisecond}, ac.Offsets())
}

func TestAlign_Rules(t *testing.T) {
	tests := []struct {
		name     string
		missions []time.Duration
		spray    time.Duration
		wantLat  float64 // 0 means unmatched
	}{
		{"tie goes to earlier", []time.Duration{0, 2 * time.Second}, time.Second, 1},
		{"later is closer", []time.Duration{0, 1500 * time.Millisecond}, time.Second, 2},
		{"earlier is closer", []time.Duration{0, 1500 * time.Millisecond}, 700 * time.Millisecond, 1},
		{"exact match", []time.Duration{0, time.Second}, time.Second, 2},
		{"boundary is inclusive", []time.Duration{0}, time.Second, 1},
		{"just over tolerance", []time.Duration{0}, time.Second + time.Millisecond, 0},
		{"before every mission", []time.Duration{2 * time.Second}, 1500 * time.Millisecond, 1},
		{"after every mission", []time.Duration{0}, 900 * time.Millisecond, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ms []models.MissionSample
			for i, d := range tt.missions {
				ms = append(ms, mission(at(d), float64(i+1)))
			}
			got := NewAlignmentController(time.Second, nil).Align(ms, []models.SpraySample{spray(at(tt.spray), 1)})
			require.Len(t, got, 1)
			if tt.wantLat == 0 {
				assert.Nil(t, got[0].Location)
				return
			}
			require.NotNil(t, got[0].Location)
			assert.Equal(t, tt.wantLat, got[0].Location.Latitude)
		})
	}
}

func TestAlign_DuplicateMissionTimes(t *testing.T) {
	ms := []models.MissionSample{mission(at(0), 1), mission(at(0), 2), mission(at(3*time.Second), 3)}
	got := NewAlignmentController(time.Second, nil).Align(ms, []models.SpraySample{spray(at(200*time.Millisecond), 1)})
	require.NotNil(t, got[0].Location)
	assert.Equal(t, 2.0, got[0].Location.Latitude, "last sample at the shared instant wins")
}

func TestAlign_SortsAndKeepsLength(t *testing.T) {
	ms := []models.MissionSample{
		mission(at(4*time.Second), 3),
		mission(time.Time{}, 99),
		mission(at(0), 1),
		mission(at(2*time.Second), 2),
	}
	sprays := []models.SpraySample{
		spray(at(4100*time.Millisecond), 1),
		spray(time.Time{}, 2),
		spray(at(100*time.Millisecond), 3),
		spray(at(2*time.Second), 4),
		spray(at(30*time.Second), 5),
	}
	msIn := append([]models.MissionSample(nil), ms...)
	spraysIn := append([]models.SpraySample(nil), sprays...)

	ac := NewAlignmentController(time.Second, nil)
	got := ac.Align(ms, sprays)
	require.Len(t, got, len(sprays))

	var order []int
	for _, s := range got {
		order = append(order, s.Line)
	}
	assert.Equal(t, []int{3, 4, 1, 5, 2}, order, "chronological, null time last")

	assert.Equal(t, 1.0, got[0].Location.Latitude)
	assert.Equal(t, 2.0, got[1].Location.Latitude)
	assert.Equal(t, 3.0, got[2].Location.Latitude)
	assert.Nil(t, got[3].Location)
	assert.Nil(t, got[4].Location, "null time is never matched")
	assert.Equal(t, AlignStats{Sprays: 5, Matched: 3, Gaps: 2}, ac.Stats())

	assert.Equal(t, msIn, ms)
	assert.Equal(t, spraysIn, sprays)
}

func TestAlign_ClearsStaleLocation(t *testing.T) {
	s := spray(at(30*time.Second), 1)
	s.Location = &models.Location{Latitude: 5}
	got := NewAlignmentController(time.Second, nil).Align([]models.MissionSample{mission(at(0), 1)}, []models.SpraySample{s})
	assert.Nil(t, got[0].Location)
	assert.NotNil(t, s.Location)
}

func TestAlign_EmptyInputs(t *testing.T) {
	ac := NewAlignmentController(time.Second, nil)

	got := ac.Align(nil, []models.SpraySample{spray(at(0), 1), spray(at(time.Second), 2)})
	require.Len(t, got, 2)
	assert.Nil(t, got[0].Location)
	assert.Nil(t, got[1].Location)
	assert.Equal(t, AlignStats{Sprays: 2, Gaps: 2}, ac.Stats())

	got = ac.Align([]models.MissionSample{mission(at(0), 1)}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = ac.Align([]models.MissionSample{mission(time.Time{}, 1)}, []models.SpraySample{spray(at(0), 1)})
	assert.Nil(t, got[0].Location, "missions without time are not candidates")
}

func TestNewAlignmentController_DefaultTolerance(t *testing.T) {
	assert.Equal(t, DefaultTolerance, NewAlignmentController(0, nil).Tolerance())
	assert.Equal(t, DefaultTolerance, NewAlignmentController(-time.Second, nil).Tolerance())
	assert.Equal(t, 250*time.Millisecond, NewAlignmentController(250*time.Millisecond, nil).Tolerance())
}
