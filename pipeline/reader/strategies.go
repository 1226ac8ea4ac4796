package reader

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lakeload/lakeload/table"
	"github.com/lakeload/lakeload/utils"
)

// streamingScan parses the gzip stream directly, inferring column types
// from a bounded leading sample so that well-formed values are parsed into
// cheap native types. Malformed rows are skipped.
func (r Reader) streamingScan(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("gzip open: %w", err)
	}
	defer gz.Close()

	cr := newCSVReader(gz)

	header, err := cr.Read()
	if err != nil {
		return table.Table{}, fmt.Errorf("read header: %w", err)
	}

	// Buffer a bounded sample for type inference, then replay it.
	sample := make([][]string, 0, r.config.SampleRows)
	for len(sample) < r.config.SampleRows {
		rec, err := readRecord(cr, len(header))
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Table{}, err
		}
		if rec == nil {
			continue
		}
		sample = append(sample, rec)
	}

	types := inferColumnTypes(sample, len(header))

	rows := make([][]any, 0, len(sample))
	for _, rec := range sample {
		rows = append(rows, convertTyped(rec, types))
	}

	for {
		rec, err := readRecord(cr, len(header))
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Table{}, err
		}
		if rec == nil {
			continue
		}
		rows = append(rows, convertTyped(rec, types))
		if len(rows)%r.config.BatchSize == 0 {
			utils.AwaitEnoughMemory("streaming_scan", r.config.MaxRamBytes)
			logger.Debug().Int("rows", len(rows)).Msg("streaming scan progress")
		}
	}

	if len(rows) == 0 {
		return table.Table{}, errors.New("streaming scan produced zero rows")
	}

	return table.Table{Columns: header, Rows: rows}, nil
}

// decompressBatched stream-decompresses the source into a scratch file
// using a small fixed-size copy buffer, then parses the scratch file in
// batches. The scratch file is removed on every exit path.
func (r Reader) decompressBatched(path string) (_ table.Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("gzip open: %w", err)
	}
	defer gz.Close()

	tempDir := r.config.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	tempPath := filepath.Join(tempDir, fmt.Sprintf("lakeload-%s.csv", uuid.New().String()))

	tmp, err := os.Create(tempPath)
	if err != nil {
		return table.Table{}, fmt.Errorf("create scratch file: %w", err)
	}
	defer func() {
		tmp.Close()
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn().Str("path", tempPath).Str("err", removeErr.Error()).Msg("failed to remove scratch file")
		}
	}()

	if _, err = io.CopyBuffer(tmp, gz, make([]byte, 32*1024)); err != nil {
		return table.Table{}, fmt.Errorf("decompress to scratch file: %w", err)
	}

	if _, err = tmp.Seek(0, io.SeekStart); err != nil {
		return table.Table{}, err
	}

	return r.parseBatched(tmp, "decompress_batched")
}

// directBatched applies the batched parser straight to the compressed
// stream; the gzip layer handles decompression natively.
func (r Reader) directBatched(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("gzip open: %w", err)
	}
	defer gz.Close()

	return r.parseBatched(gz, "direct_batched")
}

// fullBuffer is the last resort: the whole file is read and decompressed
// into memory in one shot, then parsed with the same row tolerance as the
// batched strategies.
func (r Reader) fullBuffer(path string) (table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return table.Table{}, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return table.Table{}, fmt.Errorf("gzip open: %w", err)
	}

	buffer := new(bytes.Buffer)
	if _, err = buffer.ReadFrom(gz); err != nil {
		return table.Table{}, fmt.Errorf("decompress: %w", err)
	}

	return r.parseBatched(buffer, "full_buffer")
}

// parseBatched consumes csv records from src in fixed-size batches,
// checking the memory ceiling between batches. All cells stay textual.
func (r Reader) parseBatched(src io.Reader, name string) (table.Table, error) {
	cr := newCSVReader(src)

	header, err := cr.Read()
	if err != nil {
		return table.Table{}, fmt.Errorf("read header: %w", err)
	}

	var rows [][]any
	for {
		rec, err := readRecord(cr, len(header))
		if err == io.EOF {
			break
		}
		if err != nil {
			return table.Table{}, err
		}
		if rec == nil {
			continue
		}
		rows = append(rows, convertPlain(rec))
		if len(rows)%r.config.BatchSize == 0 {
			utils.AwaitEnoughMemory(name, r.config.MaxRamBytes)
			logger.Debug().Int("rows", len(rows)).Msg("batched parse progress")
		}
	}

	if len(rows) == 0 {
		return table.Table{}, errors.New("batched parse produced zero rows")
	}

	return table.Table{Columns: header, Rows: rows}, nil
}

func newCSVReader(src io.Reader) *csv.Reader {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// readRecord reads the next record, skipping malformed rows. A nil record
// with nil error means the row was skipped. Record length is fitted to the
// header width.
func readRecord(cr *csv.Reader, width int) ([]string, error) {
	rec, err := cr.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			logger.Debug().Str("err", parseErr.Error()).Msg("skipping malformed row")
			return nil, nil
		}
		return nil, err
	}
	if len(rec) == 0 {
		return nil, nil
	}
	return fitRecord(rec, width), nil
}

// fitRecord pads short records with empty fields and truncates long ones
// so every row matches the header width.
func fitRecord(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	if len(rec) > width {
		return rec[:width]
	}
	padded := make([]string, width)
	copy(padded, rec)
	return padded
}

func convertPlain(rec []string) []any {
	row := make([]any, len(rec))
	for i, v := range rec {
		row[i] = v
	}
	return row
}
