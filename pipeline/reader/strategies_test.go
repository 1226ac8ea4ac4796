package reader

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lakeload/lakeload/table"
)

func writeGzip(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.csv.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestFullBufferSkipsMalformedRows(t *testing.T) {
	path := writeGzip(t, "a,b,c\n1,2,3\nbad\"field,oops\n4,5,6\n")
	r := NewReader(Config{BatchSize: 2, SampleRows: 2})

	got, err := r.fullBuffer(path)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, got.Columns)
	require.Len(t, got.Rows, 2)
	require.Equal(t, "1", got.Rows[0][0])
	require.Equal(t, "6", got.Rows[1][2])
}

func TestReadFallsThroughToNextStrategy(t *testing.T) {
	path := writeGzip(t, "a,b\n1,2\n3,4\n")
	r := NewReader(Config{BatchSize: 2, SampleRows: 2})

	calls := 0
	strategies := []strategy{
		{"broken", func(string) (table.Table, error) {
			calls++
			return table.Table{}, errors.New("transient parse failure")
		}},
		{"full_buffer", r.fullBuffer},
	}

	got, err := r.readWith(strategies, path)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Len(t, got.Rows, 2)
}

func TestDecompressBatchedRemovesScratchFileOnFailure(t *testing.T) {
	scratchDir := t.TempDir()

	// valid gzip header, truncated stream: decompression fails mid-copy
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for i := 0; i < 1_000; i++ {
		_, err := gz.Write([]byte(fmt.Sprintf("row-%d,%s\n", i, strings.Repeat("x", 40))))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "truncated.csv.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes()[:buf.Len()/2], 0o644))

	r := NewReader(Config{BatchSize: 2, SampleRows: 2, TempDir: scratchDir})
	_, err := r.decompressBatched(path)
	require.Error(t, err)

	leftover, err := filepath.Glob(filepath.Join(scratchDir, "lakeload-*.csv"))
	require.NoError(t, err)
	require.Empty(t, leftover)
}
