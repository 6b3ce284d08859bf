package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"spray-logger/models"
	"spray-logger/utils"
	"spray-logger/views"
)

// ManifestName is the file describing an export session.
const ManifestName = "manifest.yaml"

// Manifest records what an export session contains.
type Manifest struct {
	RunID      string         `yaml:"run_id"`
	Source     string         `yaml:"source"`
	CreatedAt  string         `yaml:"created_at"`
	Compressed bool           `yaml:"compressed"`
	Tolerance  string         `yaml:"alignment_tolerance"`
	Located    int            `yaml:"located_spray_samples"`
	Files      []ManifestFile `yaml:"files"`
}

// ManifestFile is one exported table.
type ManifestFile struct {
	Dataset string `yaml:"dataset"`
	Name    string `yaml:"name"`
	Rows    uint64 `yaml:"rows"`
}

// ExportController writes the three datasets of a Log into a fresh
// session directory:
//
//	<base_dir>/<prefix>_YYYYMMDD_HHMMSS/
//	    raw.csv  mission.csv  spray.csv  (".zst" suffix when compressed)
//	    manifest.yaml
type ExportController struct {
	cfg        utils.ExportConfig
	sessionDir string
	runID      uuid.UUID
	createdAt  time.Time
	log        *utils.Logger
}

// NewExportController creates the session directory.
func NewExportController(cfg utils.ExportConfig, log *utils.Logger) (*ExportController, error) {
	if log == nil {
		log = utils.Discard()
	}
	now := time.Now()
	sessionDir := filepath.Join(cfg.BaseDir, utils.SessionName(cfg.SessionPrefix, now))

	if !cfg.Overwrite {
		if _, err := os.Stat(sessionDir); err == nil {
			return nil, fmt.Errorf("session dir %s already exists (overwrite=false)", sessionDir)
		}
	}
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	log.Info("export controller ready  session=%s", sessionDir)
	return &ExportController{
		cfg:        cfg,
		sessionDir: sessionDir,
		runID:      uuid.New(),
		createdAt:  now.UTC(),
		log:        log,
	}, nil
}

// Export writes every dataset of lg and the manifest. Files written before
// a failure are left in place.
func (ec *ExportController) Export(lg *Log) (*Manifest, error) {
	st := lg.Stats()
	m := &Manifest{
		RunID:      ec.runID.String(),
		Source:     lg.Path(),
		CreatedAt:  ec.createdAt.Format(time.RFC3339),
		Compressed: ec.cfg.Compress,
		Tolerance:  st.AlignTolerance.String(),
		Located:    st.Alignment.Matched,
	}

	for _, ds := range views.Datasets {
		rows, err := ec.writeDataset(ds, datasetRows(lg, ds))
		if err != nil {
			return nil, err
		}
		m.Files = append(m.Files, ManifestFile{
			Dataset: ds.String(),
			Name:    ds.FileName(ec.cfg.Compress),
			Rows:    rows,
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(ec.sessionDir, ManifestName), data, 0644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	ec.log.Info("export finished  (run=%s, session=%s)", m.RunID, ec.sessionDir)
	return m, nil
}

func (ec *ExportController) writeDataset(ds views.Dataset, rows []models.CSVRowWriter) (uint64, error) {
	path := filepath.Join(ec.sessionDir, ds.FileName(ec.cfg.Compress))
	w, err := views.NewCSVWriter(path, ec.cfg.BufferSizeKB*1024, ec.cfg.WriteHeader, ds.Columns(), ec.cfg.Compress)
	if err != nil {
		return 0, err
	}
	for _, r := range rows {
		if err := w.WriteRow(r.CSVRow()); err != nil {
			w.Close()
			return 0, err
		}
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	ec.log.Debug("wrote %s (%d rows)", path, w.Rows())
	return w.Rows(), nil
}

func datasetRows(lg *Log, ds views.Dataset) []models.CSVRowWriter {
	var rows []models.CSVRowWriter
	switch ds {
	case views.DatasetRaw:
		raw := lg.RawRecords()
		for i := range raw {
			rows = append(rows, &raw[i])
		}
	case views.DatasetMission:
		ms := lg.MissionSamples()
		for i := range ms {
			rows = append(rows, &ms[i])
		}
	case views.DatasetSpray:
		ss := lg.SprayAlignedSamples()
		for i := range ss {
			rows = append(rows, &ss[i])
		}
	}
	return rows
}

// SessionDir returns the path to the export directory.
func (ec *ExportController) SessionDir() string {
	return ec.sessionDir
}

// RunID returns the identifier written to the manifest.
func (ec *ExportController) RunID() string {
	return ec.runID.String()
}
