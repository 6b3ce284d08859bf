package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// CSVWriter is a buffered CSV file writer, optionally zstd-compressed.
//
// Layering: csv.Writer ─► bufio.Writer ─► [zstd.Encoder] ─► *os.File
type CSVWriter struct {
	mu   sync.Mutex
	path string
	file *os.File
	enc  *zstd.Encoder // nil when uncompressed
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
}

// NewCSVWriter creates the file at path and writes the header row when
// writeHeader is set. With compress the stream is zstd-encoded.
func NewCSVWriter(path string, bufSizeBytes int, writeHeader bool, header []string, compress bool) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 256 * 1024 // 256 KB default
	}

	var sink io.Writer = f
	var enc *zstd.Encoder
	if compress {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd writer %s: %w", path, err)
		}
		sink = enc
	}

	bw := bufio.NewWriterSize(sink, bufSizeBytes)
	w := &CSVWriter{
		path: path,
		file: f,
		enc:  enc,
		buf:  bw,
		csv:  csv.NewWriter(bw),
	}

	if writeHeader && len(header) > 0 {
		if err := w.csv.Write(header); err != nil {
			w.abort()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csv write %s: %w", w.path, err)
	}
	w.rows++
	return nil
}

// Flush pushes buffered rows to the file (through the encoder, if any).
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *CSVWriter) flushLocked() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("csv flush %s: %w", w.path, err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("csv flush %s: %w", w.path, err)
	}
	if w.enc != nil {
		if err := w.enc.Flush(); err != nil {
			return fmt.Errorf("zstd flush %s: %w", w.path, err)
		}
	}
	return nil
}

// Close flushes remaining data, finishes the zstd frame and closes the file.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.flushLocked()
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("zstd close %s: %w", w.path, cerr)
		}
	}
	if cerr := w.file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("csv close %s: %w", w.path, cerr)
	}
	return err
}

func (w *CSVWriter) abort() {
	if w.enc != nil {
		w.enc.Close()
	}
	w.file.Close()
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// Path returns the file being written.
func (w *CSVWriter) Path() string {
	return w.path
}
