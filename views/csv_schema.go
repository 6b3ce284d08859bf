package views

import "spray-logger/models"

// Dataset identifies one of the exported tables.
type Dataset int

const (
	DatasetRaw Dataset = iota
	DatasetMission
	DatasetSpray
)

// Datasets lists every exported table in export order.
var Datasets = []Dataset{DatasetRaw, DatasetMission, DatasetSpray}

var datasetNames = map[Dataset]string{
	DatasetRaw:     "raw",
	DatasetMission: "mission",
	DatasetSpray:   "spray",
}

func (d Dataset) String() string {
	if n, ok := datasetNames[d]; ok {
		return n
	}
	return "unknown"
}

// FileName returns the export file name for d, e.g. "spray.csv" or
// "spray.csv.zst" when compressed.
func (d Dataset) FileName(compress bool) string {
	name := d.String() + ".csv"
	if compress {
		name += ".zst"
	}
	return name
}

// Columns returns the canonical column list for d. The models own the
// layout; this is the single lookup point for exporters.
func (d Dataset) Columns() []string {
	switch d {
	case DatasetRaw:
		return models.RawRecord{}.CSVHeader()
	case DatasetMission:
		return models.MissionSample{}.CSVHeader()
	case DatasetSpray:
		return models.SpraySample{}.CSVHeader()
	default:
		return nil
	}
}
