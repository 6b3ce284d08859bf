package controller

import "spray-logger/views"

// Summary flattens the load statistics for display.
func (l *Log) Summary() views.Summary {
	st := l.stats
	return views.Summary{
		Source:    l.path,
		First:     st.FirstTime,
		Last:      st.LastTime,
		Tolerance: st.AlignTolerance,
		Elapsed:   st.LoadDuration,

		Lines:          st.Lines.Total,
		Blank:          st.Lines.Blank,
		MalformedLines: st.Lines.Malformed,
		Records:        st.Lines.Records,
		BadTimestamps:  st.Lines.BadTimestamps,

		MissionRecords:   st.MissionRecords,
		MissionHeaders:   st.MissionHeaders,
		MissionMalformed: st.Mission.Malformed,
		MissionExcluded:  st.Mission.Excluded,
		MissionValid:     st.Mission.Output,

		SprayRecords:   st.SprayRecords,
		SprayHeaders:   st.SprayHeaders,
		SprayMalformed: st.Spray.Malformed,
		SprayDecoded:   st.Spray.Output,

		Located: st.Alignment.Matched,
		Gaps:    st.Alignment.Gaps,
	}
}
