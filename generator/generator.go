// Package generator produces synthetic gzip-compressed source extracts
// for exercising the pipeline without a real upstream feed.
package generator

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakeload/lakeload/utils"
)

var (
	logger = utils.LakeLogger("generator")
)

// Generate writes a csv.gz file for the processing date under dir, with
// one header row followed by rows synthetic records over the given
// columns. Returns the written path.
func Generate(dir, pattern, date string, columns []string, rows int) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("columns must not be empty")
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create input dir %s: %w", dir, err)
	}

	token := strings.ReplaceAll(date, "-", "")
	filename := strings.ReplaceAll(pattern, "{date}", token)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	cw := csv.NewWriter(gz)

	if err := cw.Write(columns); err != nil {
		return "", err
	}

	record := make([]string, len(columns))
	for i := 0; i < rows; i++ {
		for j, col := range columns {
			record[j] = fmt.Sprintf("%s_value_%d", col, i)
		}
		if err := cw.Write(record); err != nil {
			return "", err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}

	logger.Info().Str("path", path).Int("rows", rows).Int("columns", len(columns)).Msg("generated synthetic extract")
	return path, nil
}
