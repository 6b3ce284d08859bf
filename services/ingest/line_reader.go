package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"spray-logger/models"
	"spray-logger/utils"
)

// LineStats counts what the reader did with each input line.
type LineStats struct {
	Total         int // lines seen, blank included
	Blank         int
	Malformed     int // fewer than four comma-separated columns
	Records       int
	BadTimestamps int // records whose timestamp column did not parse
}

// LineReader turns raw log text into RawRecords.
type LineReader struct {
	ts    *utils.TimestampParser
	log   *utils.Logger
	stats LineStats
}

// NewLineReader returns a reader using ts for the timestamp column; nil
// arguments select the default parser and a discarding logger.
func NewLineReader(ts *utils.TimestampParser, log *utils.Logger) *LineReader {
	if ts == nil {
		ts = utils.NewTimestampParser(nil, nil)
	}
	if log == nil {
		log = utils.Discard()
	}
	return &LineReader{ts: ts, log: log}
}

// ReadFile loads the whole file at path. A missing or unreadable file
// yields no records and an error wrapping utils.ErrFileAccess. Lines have
// no length limit.
func (r *LineReader) ReadFile(path string) ([]models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		r.stats = LineStats{}
		r.log.Error("error loading log file %s: %v", path, err)
		return nil, utils.Wrap(fmt.Errorf("%w: %w", utils.ErrFileAccess, err), "ingest", "ReadFile", "read log")
	}
	return r.ParseLines(splitLines(string(data))), nil
}

// Parse reads every line from rd. Only I/O failures are returned.
func (r *LineReader) Parse(rd io.Reader) ([]models.RawRecord, error) {
	br := bufio.NewReader(rd)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, trimEOL(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			r.stats = LineStats{}
			return nil, utils.Wrap(fmt.Errorf("%w: %w", utils.ErrFileAccess, err), "ingest", "Parse", "read log")
		}
	}
	return r.ParseLines(lines), nil
}

// splitLines breaks text on "\n", dropping the empty piece after a final
// newline and any trailing "\r".
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ParseLines is the pure line transform. Lines with fewer than four
// comma-separated columns are dropped without error.
func (r *LineReader) ParseLines(lines []string) []models.RawRecord {
	r.stats = LineStats{Total: len(lines)}
	records := make([]models.RawRecord, 0, len(lines))

	for i, line := range lines {
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			r.stats.Blank++
			continue
		}

		rec, ok := r.parseLine(line)
		if !ok {
			r.stats.Malformed++
			r.log.Debug("line %d: %v", i+1, utils.ErrMalformedLine)
			continue
		}
		rec.Index = len(records)
		rec.Line = i + 1
		if !rec.HasTime() {
			r.stats.BadTimestamps++
			r.log.Debug("line %d: unparsable timestamp %q", i+1, rec.Timestamp)
		}
		records = append(records, rec)
	}

	r.stats.Records = len(records)
	r.log.Debug("parsed %d records from %d lines (blank=%d, malformed=%d)",
		r.stats.Records, r.stats.Total, r.stats.Blank, r.stats.Malformed)
	return records
}

func (r *LineReader) parseLine(line string) (models.RawRecord, bool) {
	parts := strings.SplitN(line, ",", 5)
	if len(parts) < 4 {
		return models.RawRecord{}, false
	}
	rec := models.RawRecord{
		Timestamp: strings.TrimSpace(parts[0]),
		Module:    strings.TrimSpace(parts[1]),
		Severity:  strings.TrimSpace(parts[2]),
		Kind:      strings.TrimSpace(parts[3]),
	}
	if len(parts) == 5 {
		rec.Payload = strings.TrimSpace(parts[4])
	}
	rec.Time, _ = r.ts.Parse(rec.Timestamp)
	return rec, true
}

// Stats returns the counters of the last parse.
func (r *LineReader) Stats() LineStats {
	return r.stats
}
