package partition

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"

	"github.com/lakeload/lakeload/table"
	"github.com/lakeload/lakeload/utils"
)

var (
	logger = utils.LakeLogger("writer")
)

const partPattern = "part-%05d.parquet"

// Write persists t as an ordered sequence of bounded-size parquet
// partitions under outputDir. Filenames sort lexicographically in
// partition order. A zero-row table yields the directory and no
// partitions. Returns the number of partitions written; any single
// partition failure aborts the whole write without rolling back
// partitions already on disk.
func Write(t table.Table, outputDir string, chunkSize int, compression string) (int, error) {
	if chunkSize <= 0 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	codec, err := codecFor(compression)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return 0, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	// Stale partitions from a previous run for the same date must never
	// interleave with the new ones.
	if err := clearParts(outputDir); err != nil {
		return 0, err
	}

	totalRows := t.NumRows()
	if totalRows == 0 {
		logger.Info().Str("dir", outputDir).Msg("zero rows, wrote no partitions")
		return 0, nil
	}

	numChunks := (totalRows + chunkSize - 1) / chunkSize
	logger.Info().
		Int("rows", totalRows).
		Int("chunk_size", chunkSize).
		Int("partitions", numChunks).
		Str("compression", compression).
		Msg("writing partitions")

	for i := 0; i < numChunks; i++ {
		start := i * chunkSize
		length := chunkSize
		if start+length > totalRows {
			length = totalRows - start
		}
		chunk := t.Slice(start, length)

		path := filepath.Join(outputDir, fmt.Sprintf(partPattern, i))
		if err := writePart(path, chunk, codec); err != nil {
			return i, fmt.Errorf("write partition %s: %w", filepath.Base(path), err)
		}

		logger.Debug().
			Str("file", filepath.Base(path)).
			Int("rows", chunk.NumRows()).
			Msg(fmt.Sprintf("wrote partition %d/%d", i+1, numChunks))
	}

	return numChunks, nil
}

func writePart(path string, chunk table.Table, codec compress.Codec) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	typ := rowStructType(chunk.Columns)
	schema := parquet.SchemaOf(reflect.New(typ).Elem().Interface())
	pw := parquet.NewWriter(f, schema, parquet.Compression(codec))

	for _, row := range chunk.Rows {
		rv := reflect.New(typ).Elem()
		for i := range chunk.Columns {
			var cell string
			if i < len(row) {
				cell = cellText(row[i])
			}
			rv.Field(i).Set(reflect.ValueOf(&cell))
		}
		if err := pw.Write(rv.Interface()); err != nil {
			return err
		}
	}

	return pw.Close()
}

// rowStructType builds a flat struct type whose parquet tags carry the
// column names, so the file schema preserves the table's column order.
func rowStructType(columns []string) reflect.Type {
	fields := make([]reflect.StructField, len(columns))
	for i, c := range columns {
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("Col%d", i),
			Type: reflect.TypeOf((*string)(nil)),
			Tag:  reflect.StructTag(fmt.Sprintf(`parquet:"%s,optional"`, c)),
		}
	}
	return reflect.StructOf(fields)
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return table.EmptyCell
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func codecFor(name string) (compress.Codec, error) {
	switch strings.ToLower(name) {
	case "", "snappy":
		return &parquet.Snappy, nil
	case "gzip":
		return &parquet.Gzip, nil
	case "zstd":
		return &parquet.Zstd, nil
	case "uncompressed", "none":
		return &parquet.Uncompressed, nil
	default:
		return nil, fmt.Errorf("unsupported compression codec: %s", name)
	}
}

func clearParts(outputDir string) error {
	stale, err := filepath.Glob(filepath.Join(outputDir, "part-*.parquet"))
	if err != nil {
		return err
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale partition %s: %w", path, err)
		}
	}
	if len(stale) > 0 {
		logger.Info().Int("count", len(stale)).Str("dir", outputDir).Msg("cleared stale partitions")
	}
	return nil
}
