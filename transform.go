package pivotchart

import (
	"fmt"
	"strings"
)

type keyUnion string

// Join left-joins right onto left by the on columns and returns a new
// dataset with left's columns followed by right's non-key columns.
// Rows without a match get nil for the added columns; when several right
// rows match, the first one wins.
func Join(left, right *Dataset, on ...string) (*Dataset, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("failed to join: no key columns")
	}
	for _, key := range on {
		if !left.HasColumn(key) || !right.HasColumn(key) {
			return nil, fmt.Errorf("failed to join: %w: %q", ErrUnknownColumn, key)
		}
	}

	keys := make(map[string]struct{}, len(on))
	for _, key := range on {
		keys[key] = struct{}{}
	}

	columns := left.Columns()
	added := make([]string, 0)
	for _, c := range right.columns {
		if _, ok := keys[c]; ok || left.HasColumn(c) {
			continue
		}
		added = append(added, c)
	}
	columns = append(columns, added...)

	index := make(map[keyUnion]Row, right.Len())
	for _, r := range right.rows {
		key := makeKeyUnion(r, on)
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = r
	}

	rows := make([]Row, 0, left.Len())
	for _, l := range left.rows {
		match := index[makeKeyUnion(l, on)]
		row := make(Row, len(columns))
		for k, v := range l {
			row[k] = v
		}
		for _, c := range added {
			if match != nil {
				row[c] = match[c]
			} else {
				row[c] = nil
			}
		}
		rows = append(rows, row)
	}

	return &Dataset{columns: columns, index: indexColumns(columns), rows: rows}, nil
}

func makeKeyUnion(r Row, on []string) keyUnion {
	parts := make([]string, len(on))
	for i, key := range on {
		parts[i] = valueKey(r[key])
	}

	return keyUnion(strings.Join(parts, "\x00"))
}

func indexColumns(columns []string) map[string]struct{} {
	index := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		index[c] = struct{}{}
	}

	return index
}
