package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound means no source file exists for the processing date. This is
// fatal and never retried.
var ErrNotFound = errors.New("source file not found")

// Locate resolves a canonical processing date (YYYY-MM-DD) to the source
// file path using the configured filename pattern, whose {date} placeholder
// receives the compact YYYYMMDD form.
func Locate(inputDir, pattern, date string) (string, error) {
	token := strings.ReplaceAll(date, "-", "")
	filename := strings.ReplaceAll(pattern, "{date}", token)
	path := filepath.Join(inputDir, filename)

	logger.Debug().Str("date", date).Str("path", path).Msg("locating source file")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}

	return path, nil
}
