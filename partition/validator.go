package partition

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lakeload/lakeload/utils"
)

// ErrNoOutput is returned when the output directory holds no partitions.
var ErrNoOutput = errors.New("no partition files found")

type OrderMismatch struct {
	Index    int
	Expected string
	Actual   string
}

type ValidationResult struct {
	// Columns is the first partition's column list as written.
	Columns []string
	// Missing lists target columns absent from the partition.
	Missing []string
	// Extra lists partition columns absent from the target schema.
	Extra []string
	// Order describes the first divergent index, set only when the
	// column sets match but the order differs.
	Order *OrderMismatch
}

// Valid fails only on missing required columns. Extra columns and order
// differences are tolerated and reported as diagnostics.
func (r ValidationResult) Valid() bool {
	return len(r.Missing) == 0
}

// Validate inspects the first partition (by sorted filename) under
// outputDir and checks its column list against the target schema. Only
// the partition footer is read, never the data pages.
func Validate(outputDir string, target []string) (ValidationResult, error) {
	vlog := utils.LakeLogger("validator")

	first, err := firstPart(outputDir)
	if err != nil {
		return ValidationResult{}, err
	}

	vlog.Info().Str("file", filepath.Base(first)).Msg("inspecting partition schema")

	columns, err := Columns(first)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("read partition schema %s: %w", first, err)
	}

	result := ValidationResult{Columns: columns}
	for _, c := range target {
		if !utils.Contains(columns, c) {
			result.Missing = append(result.Missing, c)
		}
	}
	for _, c := range columns {
		if !utils.Contains(target, c) {
			result.Extra = append(result.Extra, c)
		}
	}

	// Duplicate target names can leave both sets empty while the lengths
	// still differ, so the loop is bounded by the shorter list.
	if len(result.Missing) == 0 && len(result.Extra) == 0 {
		for i := range target {
			if i >= len(columns) {
				break
			}
			if columns[i] != target[i] {
				result.Order = &OrderMismatch{Index: i, Expected: target[i], Actual: columns[i]}
				break
			}
		}
	}

	if len(result.Missing) > 0 {
		vlog.Error().
			Int("count", len(result.Missing)).
			Str("columns", strings.Join(result.Missing, ",")).
			Msg("missing required columns")
	}
	if len(result.Extra) > 0 {
		vlog.Warn().
			Int("count", len(result.Extra)).
			Str("columns", strings.Join(result.Extra, ",")).
			Msg("extra columns present")
	}
	if result.Order != nil {
		vlog.Warn().
			Int("index", result.Order.Index).
			Str("expected", result.Order.Expected).
			Str("actual", result.Order.Actual).
			Msg("column order differs")
	}

	if result.Valid() {
		vlog.Info().Int("columns", len(columns)).Msg("schema validation passed")
	} else {
		vlog.Error().Msg("schema validation failed")
	}

	return result, nil
}

func firstPart(outputDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(outputDir, "part-*.parquet"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		if _, statErr := os.Stat(outputDir); statErr != nil {
			return "", fmt.Errorf("%w: %s does not exist", ErrNoOutput, outputDir)
		}
		return "", fmt.Errorf("%w in %s", ErrNoOutput, outputDir)
	}
	sort.Strings(matches)
	return matches[0], nil
}
