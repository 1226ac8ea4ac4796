package generator_test

import (
	"compress/gzip"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lakeload/lakeload/generator"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	records, err := csv.NewReader(gz).ReadAll()
	require.NoError(t, err)
	return records
}

func TestGenerateWritesDatedExtract(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "incoming")
	columns := []string{"listing_id", "vin", "price"}

	path, err := generator.Generate(dir, "listings_combined_{date}.csv.gz", "2024-01-15", columns, 5)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "listings_combined_20240115.csv.gz"), path)

	records := readAll(t, path)
	require.Len(t, records, 6)
	require.Equal(t, columns, records[0])
	require.Equal(t, []string{"listing_id_value_0", "vin_value_0", "price_value_0"}, records[1])
	require.Equal(t, []string{"listing_id_value_4", "vin_value_4", "price_value_4"}, records[5])
}

func TestGenerateZeroRows(t *testing.T) {
	dir := t.TempDir()

	path, err := generator.Generate(dir, "extract_{date}.csv.gz", "2024-01-15", []string{"a"}, 0)
	require.NoError(t, err)

	records := readAll(t, path)
	require.Len(t, records, 1)
}

func TestGenerateEmptyColumns(t *testing.T) {
	_, err := generator.Generate(t.TempDir(), "extract_{date}.csv.gz", "2024-01-15", nil, 1)
	require.Error(t, err)
}
