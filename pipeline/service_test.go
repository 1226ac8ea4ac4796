package pipeline_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/lakeload/lakeload/destinations"
	"github.com/lakeload/lakeload/generator"
	"github.com/lakeload/lakeload/partition"
	"github.com/lakeload/lakeload/pipeline"
	"github.com/lakeload/lakeload/pipeline/reader"
	"github.com/lakeload/lakeload/table"
	"github.com/lakeload/lakeload/utils"
)

const testPattern = "listings_combined_{date}.csv.gz"

var testColumns = []string{"listing_id", "vin", "make", "model", "price"}

func newTestPipeline(t *testing.T, inputDir, outputDir string, dests []destinations.Destination) *pipeline.Pipeline {
	t.Helper()
	config := pipeline.Config{
		InputDir:        inputDir,
		FilenamePattern: testPattern,
		OutputDir:       outputDir,
		ChunkSize:       4,
		Compression:     "snappy",
		Columns:         testColumns,
		ReadAttempts:    1,
		WriteAttempts:   1,
	}
	return pipeline.NewPipeline(config, reader.NewReader(reader.Config{}), dests)
}

type recordingDestination struct {
	records []destinations.RunRecord
	err     error
}

func (d *recordingDestination) Name() string { return "recording" }

func (d *recordingDestination) Publish(record destinations.RunRecord) error {
	d.records = append(d.records, record)
	return d.err
}

func TestRunEndToEnd(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "lake")
	date := "2024-01-15"

	// source extract has an extra column and is missing "price"
	sourceColumns := []string{"listing_id", "vin", "make", "model", "dealer_notes"}
	_, err := generator.Generate(inputDir, testPattern, date, sourceColumns, 10)
	require.NoError(t, err)

	dest := &recordingDestination{}
	p := newTestPipeline(t, inputDir, outputDir, []destinations.Destination{dest})

	status, err := p.Run(date)
	require.NoError(t, err)
	require.Equal(t, 10, status.Rows)
	require.Equal(t, 3, status.Partitions)
	require.NotEmpty(t, status.RunID)
	require.Equal(t, filepath.Join(outputDir, "20240115"), status.OutputDir)

	// partitions carry the target schema regardless of the source's shape
	result, err := partition.Validate(status.OutputDir, testColumns)
	require.NoError(t, err)
	require.True(t, result.Valid())
	require.Equal(t, testColumns, result.Columns)

	first, err := partition.Read(filepath.Join(status.OutputDir, "part-00000.parquet"))
	require.NoError(t, err)
	require.Equal(t, "listing_id_value_0", first.Rows[0][0])
	require.Equal(t, "", first.Rows[0][4]) // synthesized "price"

	require.Len(t, dest.records, 1)
	require.Equal(t, "completed", dest.records[0].Outcome)
	require.Equal(t, 10, dest.records[0].Rows)
}

func TestRunMissingSource(t *testing.T) {
	dest := &recordingDestination{}
	p := newTestPipeline(t, t.TempDir(), filepath.Join(t.TempDir(), "lake"), []destinations.Destination{dest})

	_, err := p.Run("2024-01-15")
	require.ErrorIs(t, err, pipeline.ErrNotFound)

	require.Len(t, dest.records, 1)
	require.Equal(t, "failed", dest.records[0].Outcome)
}

func TestRunCorruptSourceFailsReadStep(t *testing.T) {
	inputDir := t.TempDir()
	path := filepath.Join(inputDir, "listings_combined_20240115.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("this is not gzip"), 0o644))

	p := newTestPipeline(t, inputDir, filepath.Join(t.TempDir(), "lake"), nil)

	_, err := p.Run("2024-01-15")
	require.ErrorIs(t, err, reader.ErrExhausted)
}

// flakyReader fails a fixed number of read attempts before delegating to
// the real reader.
type flakyReader struct {
	inner        reader.Reader
	failuresLeft int
}

func (f *flakyReader) Read(path string) (table.Table, error) {
	if f.failuresLeft > 0 {
		f.failuresLeft--
		return table.Table{}, errors.New("source temporarily unreadable")
	}
	return f.inner.Read(path)
}

func TestRunRetriesReadStep(t *testing.T) {
	inputDir := t.TempDir()
	date := "2024-03-07"
	_, err := generator.Generate(inputDir, testPattern, date, testColumns, 6)
	require.NoError(t, err)

	config := pipeline.Config{
		InputDir:        inputDir,
		FilenamePattern: testPattern,
		OutputDir:       filepath.Join(t.TempDir(), "lake"),
		ChunkSize:       4,
		Compression:     "snappy",
		Columns:         testColumns,
		ReadAttempts:    3,
		WriteAttempts:   1,
	}
	flaky := &flakyReader{inner: reader.NewReader(reader.Config{}), failuresLeft: 1}
	p := pipeline.NewPipeline(config, flaky, nil)

	retriesBefore := testutil.ToFloat64(utils.PrometheusStepFailedRetry.WithLabelValues(date, "read"))

	status, err := p.Run(date)
	require.NoError(t, err)
	require.Equal(t, 6, status.Rows)
	require.Equal(t, 0, flaky.failuresLeft)

	retriesAfter := testutil.ToFloat64(utils.PrometheusStepFailedRetry.WithLabelValues(date, "read"))
	require.Equal(t, float64(1), retriesAfter-retriesBefore)
}

func TestRunReadRetryBudgetExhausted(t *testing.T) {
	inputDir := t.TempDir()
	date := "2024-03-08"
	_, err := generator.Generate(inputDir, testPattern, date, testColumns, 2)
	require.NoError(t, err)

	config := pipeline.Config{
		InputDir:        inputDir,
		FilenamePattern: testPattern,
		OutputDir:       filepath.Join(t.TempDir(), "lake"),
		ChunkSize:       4,
		Compression:     "snappy",
		Columns:         testColumns,
		ReadAttempts:    2,
		WriteAttempts:   1,
	}
	flaky := &flakyReader{inner: reader.NewReader(reader.Config{}), failuresLeft: 5}
	p := pipeline.NewPipeline(config, flaky, nil)

	_, err = p.Run(date)
	require.ErrorContains(t, err, "read step")
	require.Equal(t, 3, flaky.failuresLeft)
}

func TestRunDestinationFailureDoesNotFailRun(t *testing.T) {
	inputDir := t.TempDir()
	date := "2024-01-15"
	_, err := generator.Generate(inputDir, testPattern, date, testColumns, 3)
	require.NoError(t, err)

	dest := &recordingDestination{err: errors.New("manifest unavailable")}
	p := newTestPipeline(t, inputDir, filepath.Join(t.TempDir(), "lake"), []destinations.Destination{dest})

	_, err = p.Run(date)
	require.NoError(t, err)
	require.Len(t, dest.records, 1)
}
