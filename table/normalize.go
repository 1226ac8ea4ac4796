package table

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lakeload/lakeload/utils"
)

// EmptyCell is the textual representation of an absent or null value.
const EmptyCell = ""

var (
	logger = utils.LakeLogger("normalizer")
)

// Normalize conforms t to exactly the target column list:
//
//  1. every existing cell is cast to text (lenient fallback to EmptyCell)
//  2. columns missing from t are synthesized filled with EmptyCell
//  3. columns not in target are dropped
//  4. columns are reordered to match target
//
// The row count is unchanged and the operation is idempotent.
func Normalize(t Table, target []string) Table {
	sourceIndex := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		sourceIndex[c] = i
	}

	missing := 0
	dropped := 0
	for _, c := range target {
		if _, ok := sourceIndex[c]; !ok {
			missing++
		}
	}
	targetSet := make(map[string]struct{}, len(target))
	for _, c := range target {
		targetSet[c] = struct{}{}
	}
	for _, c := range t.Columns {
		if _, ok := targetSet[c]; !ok {
			dropped++
		}
	}
	if missing > 0 || dropped > 0 {
		logger.Info().
			Int("rows", t.NumRows()).
			Int("missing", missing).
			Int("dropped", dropped).
			Msg("normalizing to target schema")
	}

	rows := make([][]any, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]any, len(target))
		for c, name := range target {
			si, ok := sourceIndex[name]
			if !ok || si >= len(row) {
				out[c] = EmptyCell
				continue
			}
			out[c] = castCell(row[si])
		}
		rows[r] = out
	}

	columns := make([]string, len(target))
	copy(columns, target)
	return Table{Columns: columns, Rows: rows}
}

// castCell textifies a cell, coercing values that have no direct textual
// form to EmptyCell instead of aborting the run.
func castCell(v any) string {
	s, err := castStrict(v)
	if err != nil {
		return EmptyCell
	}
	return s
}

func castStrict(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return EmptyCell, nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("cannot cast %T to text", v)
	}
}
