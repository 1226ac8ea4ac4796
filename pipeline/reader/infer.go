package reader

import "strconv"

type columnType int

const (
	typeString columnType = iota
	typeBool
	typeInt
	typeFloat
)

// inferColumnTypes picks a parse type per column from the sample. The
// choice only affects how values are parsed during the scan; every column
// is cast back to text by the normalizer. Columns with no non-empty sample
// values stay textual.
func inferColumnTypes(sample [][]string, width int) []columnType {
	types := make([]columnType, width)

	for col := 0; col < width; col++ {
		isBool, isInt, isFloat := true, true, true
		seen := false

		for _, rec := range sample {
			v := rec[col]
			if v == "" {
				continue
			}
			seen = true
			if isBool {
				if _, err := strconv.ParseBool(v); err != nil {
					isBool = false
				}
			}
			if isInt {
				if _, err := strconv.ParseInt(v, 10, 64); err != nil {
					isInt = false
				}
			}
			if isFloat {
				if _, err := strconv.ParseFloat(v, 64); err != nil {
					isFloat = false
				}
			}
			if !isBool && !isInt && !isFloat {
				break
			}
		}

		switch {
		case !seen:
			types[col] = typeString
		case isInt:
			types[col] = typeInt
		case isFloat:
			types[col] = typeFloat
		case isBool:
			types[col] = typeBool
		default:
			types[col] = typeString
		}
	}

	return types
}

// convertTyped parses cells according to the inferred column types. Empty
// cells become nil (null); values that fail to parse keep their raw text.
func convertTyped(rec []string, types []columnType) []any {
	row := make([]any, len(rec))
	for i, v := range rec {
		if v == "" {
			row[i] = nil
			continue
		}
		switch types[i] {
		case typeInt:
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				row[i] = parsed
				continue
			}
		case typeFloat:
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				row[i] = parsed
				continue
			}
		case typeBool:
			if parsed, err := strconv.ParseBool(v); err == nil {
				row[i] = parsed
				continue
			}
		}
		row[i] = v
	}
	return row
}
