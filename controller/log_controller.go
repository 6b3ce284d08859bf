package controller

import (
	"io"
	"time"

	"spray-logger/metric"
	"spray-logger/models"
	"spray-logger/services/ingest"
	"spray-logger/utils"
)

// Stats summarises every stage of one load.
type Stats struct {
	Lines          ingest.LineStats
	MissionRecords int // MISSION_INFO records after the leading row was dropped
	SprayRecords   int // SPRAY_INFO records after the leading row was dropped
	MissionHeaders int // leading MISSION_INFO rows discarded (0 or 1)
	SprayHeaders   int // leading SPRAY_INFO rows discarded (0 or 1)
	Mission        ingest.DecodeStats
	Spray          ingest.DecodeStats
	Alignment      AlignStats
	FirstTime      time.Time
	LastTime       time.Time
	LoadDuration   time.Duration
	AlignTolerance time.Duration
}

// Option configures Load.
type Option func(*options)

type options struct {
	log       *utils.Logger
	tolerance time.Duration
	ts        *utils.TimestampParser
	metrics   *metric.Metrics
}

// WithLogger sets the diagnostics sink shared by every stage.
func WithLogger(l *utils.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTolerance overrides the alignment window (default DefaultTolerance).
func WithTolerance(d time.Duration) Option {
	return func(o *options) { o.tolerance = d }
}

// WithTimestampParser overrides how the timestamp column is interpreted.
func WithTimestampParser(p *utils.TimestampParser) Option {
	return func(o *options) { o.ts = p }
}

// WithMetrics records the load's counters into m.
func WithMetrics(m *metric.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Log is a parsed and aligned flight-controller log. All work happens in
// Load; afterwards the datasets never change. Accessors return copies.
type Log struct {
	path     string
	raw      []models.RawRecord
	missions []models.MissionSample
	sprays   []models.SpraySample
	stats    Stats
}

var (
	_ models.Named      = (*Log)(nil)
	_ models.Disposable = (*Log)(nil)
)

// Load reads the file at path and runs the whole pipeline:
//
//	raw lines ──► classify (drop first) ──► decode mission + filter
//	                                    └─► decode spray ──► align to mission
//
// If the file cannot be read the returned Log is empty and err wraps
// utils.ErrFileAccess. No other error is returned.
func Load(path string, opts ...Option) (*Log, error) {
	o := newOptions(opts)
	start := time.Now()
	reader := ingest.NewLineReader(o.ts, o.log.With("ingest"))
	raw, err := reader.ReadFile(path)
	if err != nil {
		return &Log{path: path}, err
	}
	return build(path, raw, reader.Stats(), start, o), nil
}

// LoadReader is Load for an already-open source; name is used for
// diagnostics only.
func LoadReader(name string, r io.Reader, opts ...Option) (*Log, error) {
	o := newOptions(opts)
	start := time.Now()
	reader := ingest.NewLineReader(o.ts, o.log.With("ingest"))
	raw, err := reader.Parse(r)
	if err != nil {
		o.log.Error("error loading log %s: %v", name, err)
		return &Log{path: name}, err
	}
	return build(name, raw, reader.Stats(), start, o), nil
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = utils.Discard()
	}
	return o
}

func build(path string, raw []models.RawRecord, lines ingest.LineStats, start time.Time, o *options) *Log {
	lg := &Log{path: path, raw: raw}
	st := &lg.stats
	st.Lines = lines

	missionRaw := ingest.Classify(raw, models.KindMission, true)
	sprayRaw := ingest.Classify(raw, models.KindSpray, true)
	st.MissionRecords, st.SprayRecords = len(missionRaw), len(sprayRaw)
	st.MissionHeaders = countKind(raw, models.KindMission) - len(missionRaw)
	st.SprayHeaders = countKind(raw, models.KindSpray) - len(sprayRaw)

	md := ingest.NewMissionDecoder(o.log.With("mission"))
	lg.missions = md.Decode(missionRaw)
	st.Mission = md.Stats()

	sd := ingest.NewSprayDecoder(o.log.With("spray"))
	sprays := sd.Decode(sprayRaw)
	st.Spray = sd.Stats()

	ac := NewAlignmentController(o.tolerance, o.log.With("align"))
	lg.sprays = ac.Align(lg.missions, sprays)
	st.Alignment = ac.Stats()
	st.AlignTolerance = ac.Tolerance()

	for i := range raw {
		t := raw[i].Time
		if t.IsZero() {
			continue
		}
		if st.FirstTime.IsZero() || t.Before(st.FirstTime) {
			st.FirstTime = t
		}
		if t.After(st.LastTime) {
			st.LastTime = t
		}
	}
	st.LoadDuration = time.Since(start)

	if o.metrics != nil {
		observe(o.metrics, st, ac.Offsets())
	}
	o.log.Info("loaded %s: records=%d mission=%d spray=%d located=%d",
		path, len(raw), len(lg.missions), len(lg.sprays), st.Alignment.Matched)
	return lg
}

func countKind(raw []models.RawRecord, kind string) int {
	n := 0
	for i := range raw {
		if raw[i].Kind == kind {
			n++
		}
	}
	return n
}

func observe(m *metric.Metrics, st *Stats, offsets []time.Duration) {
	m.RecordLines("record", st.Lines.Records)
	m.RecordLines("blank", st.Lines.Blank)
	m.RecordLines("malformed", st.Lines.Malformed)

	for _, k := range []struct {
		kind    string
		headers int
		dec     ingest.DecodeStats
	}{
		{models.KindMission, st.MissionHeaders, st.Mission},
		{models.KindSpray, st.SprayHeaders, st.Spray},
	} {
		m.RecordRecords(k.kind, "header", k.headers)
		m.RecordRecords(k.kind, "malformed", k.dec.Malformed)
		m.RecordRecords(k.kind, "excluded", k.dec.Excluded)
		m.RecordRecords(k.kind, "decoded", k.dec.Output)
	}

	m.RecordAlignment("matched", st.Alignment.Matched)
	m.RecordAlignment("gap", st.Alignment.Gaps)
	for _, d := range offsets {
		m.ObserveOffset(d)
	}
	m.SetLoadDuration(st.LoadDuration)
}

// Path returns the source the log was loaded from.
func (l *Log) Path() string { return l.path }

// Tag identifies the object type in diagnostics.
func (l *Log) Tag() string { return "Log" }

// RawRecords returns every accepted line in input order.
func (l *Log) RawRecords() []models.RawRecord {
	out := make([]models.RawRecord, len(l.raw))
	copy(out, l.raw)
	return out
}

// MissionSamples returns the valid mission samples in input order.
func (l *Log) MissionSamples() []models.MissionSample {
	out := make([]models.MissionSample, len(l.missions))
	copy(out, l.missions)
	return out
}

// SprayAlignedSamples returns the spray samples in chronological order with
// their aligned locations.
func (l *Log) SprayAlignedSamples() []models.SpraySample {
	out := make([]models.SpraySample, len(l.sprays))
	copy(out, l.sprays)
	for i := range out {
		if loc := out[i].Location; loc != nil {
			c := *loc
			out[i].Location = &c
		}
	}
	return out
}

// Stats returns the per-stage counters of the load.
func (l *Log) Stats() Stats { return l.stats }

// Close discards the parsed datasets. The Log is empty afterwards.
func (l *Log) Close() error {
	l.raw, l.missions, l.sprays = nil, nil, nil
	return nil
}
