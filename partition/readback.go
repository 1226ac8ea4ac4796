package partition

import (
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/lakeload/lakeload/table"
)

// Columns returns the column names of one partition file in physical
// order. Only the file footer is read.
func Columns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, err
	}

	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}
	return names, nil
}

// Read loads one partition file back into a table. Null cells come back
// as nil. Used by tests and by consumers that reconstitute the dataset.
func Read(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return table.Table{}, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return table.Table{}, err
	}

	fields := pf.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}

	var rows [][]any
	for _, rowGroup := range pf.RowGroups() {
		groupRows := rowGroup.Rows()
		buf := make([]parquet.Row, 256)
		for {
			n, readErr := groupRows.ReadRows(buf)
			for _, prow := range buf[:n] {
				row := make([]any, len(columns))
				for _, value := range prow {
					col := int(value.Column())
					if col < 0 || col >= len(row) {
						continue
					}
					if value.IsNull() {
						row[col] = nil
					} else {
						row[col] = value.String()
					}
				}
				rows = append(rows, row)
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				groupRows.Close()
				return table.Table{}, readErr
			}
			if n == 0 {
				break
			}
		}
		if err := groupRows.Close(); err != nil {
			return table.Table{}, err
		}
	}

	return table.Table{Columns: columns, Rows: rows}, nil
}
