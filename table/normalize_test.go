package table_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lakeload/lakeload/table"
)

func TestNormalizeSchemaConformance(t *testing.T) {
	target := []string{"A", "B", "C"}
	src := table.Table{
		Columns: []string{"B", "D"},
		Rows: [][]any{
			{"b0", "d0"},
			{"b1", "d1"},
			{"b2", "d2"},
			{"b3", "d3"},
			{"b4", "d4"},
		},
	}

	got := table.Normalize(src, target)

	require.Equal(t, target, got.Columns)
	require.Equal(t, 5, got.NumRows())

	for r, row := range got.Rows {
		require.Len(t, row, 3)
		require.Equal(t, table.EmptyCell, row[0], "column A must be synthesized empty in row %d", r)
		require.Equal(t, table.EmptyCell, row[2], "column C must be synthesized empty in row %d", r)
	}
	require.Equal(t, "b0", got.Rows[0][1])
	require.Equal(t, "b4", got.Rows[4][1])
}

func TestNormalizeIdempotence(t *testing.T) {
	target := []string{"x", "y", "z"}
	src := table.Table{
		Columns: []string{"z", "extra", "x"},
		Rows: [][]any{
			{int64(1), true, "one"},
			{int64(2), false, "two"},
		},
	}

	once := table.Normalize(src, target)
	twice := table.Normalize(once, target)

	require.Equal(t, once.Columns, twice.Columns)
	require.Equal(t, once.Rows, twice.Rows)
}

func TestNormalizeRowConservation(t *testing.T) {
	target := []string{"a", "b"}

	for _, rows := range []int{0, 1, 7, 100} {
		src := table.Table{Columns: []string{"b"}, Rows: make([][]any, rows)}
		for i := range src.Rows {
			src.Rows[i] = []any{"v"}
		}
		got := table.Normalize(src, target)
		require.Equal(t, rows, got.NumRows())
	}
}

func TestNormalizeCastsTypedCells(t *testing.T) {
	target := []string{"i", "f", "b", "n", "t", "bad"}
	ts := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	src := table.Table{
		Columns: target,
		Rows: [][]any{
			{int64(42), 1.5, true, nil, ts, struct{ x int }{1}},
		},
	}

	got := table.Normalize(src, target)

	require.Equal(t, "42", got.Rows[0][0])
	require.Equal(t, "1.5", got.Rows[0][1])
	require.Equal(t, "true", got.Rows[0][2])
	require.Equal(t, table.EmptyCell, got.Rows[0][3])
	require.Equal(t, "2025-01-15T12:00:00Z", got.Rows[0][4])
	// values with no textual form are coerced to the placeholder
	require.Equal(t, table.EmptyCell, got.Rows[0][5])
}

func TestNormalizeShortRowsPadded(t *testing.T) {
	target := []string{"a", "b"}
	src := table.Table{
		Columns: []string{"a", "b"},
		Rows: [][]any{
			{"only-a"},
		},
	}

	got := table.Normalize(src, target)

	require.Equal(t, "only-a", got.Rows[0][0])
	require.Equal(t, table.EmptyCell, got.Rows[0][1])
}

func TestSliceBounds(t *testing.T) {
	src := table.Table{
		Columns: []string{"a"},
		Rows:    [][]any{{"0"}, {"1"}, {"2"}},
	}

	require.Equal(t, 2, src.Slice(0, 2).NumRows())
	require.Equal(t, 1, src.Slice(2, 2).NumRows())
	require.Equal(t, 0, src.Slice(3, 2).NumRows())
	require.Equal(t, "2", src.Slice(2, 1).Rows[0][0])
}
