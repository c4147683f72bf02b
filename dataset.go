package pivotchart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row maps column name to a scalar: string, int64, float64 or nil.
type Row map[string]interface{}

// Dataset is an immutable table of rows. Every pipeline stage returns a
// new Dataset, so a single instance can be shared between requests.
type Dataset struct {
	columns []string
	index   map[string]struct{}
	rows    []Row
}

// NewDataset returns a Dataset holding copies of columns and rows.
func NewDataset(columns []string, rows []Row) *Dataset {
	cols := make([]string, len(columns))
	copy(cols, columns)

	copied := make([]Row, len(rows))
	for i, r := range rows {
		row := make(Row, len(cols))
		for _, c := range cols {
			row[c] = r[c]
		}
		copied[i] = row
	}

	return &Dataset{columns: cols, index: indexColumns(cols), rows: copied}
}

// subset shares row maps with d; rows are never written after construction.
func (d *Dataset) subset(rows []Row) *Dataset {
	return &Dataset{columns: d.columns, index: d.index, rows: rows}
}

func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)

	return cols
}

func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns a copy of the i-th row.
func (d *Dataset) Row(i int) Row {
	row := make(Row, len(d.columns))
	for k, v := range d.rows[i] {
		row[k] = v
	}

	return row
}

func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns all values of a column in row order.
func (d *Dataset) Column(name string) ([]interface{}, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	values := make([]interface{}, len(d.rows))
	for i, r := range d.rows {
		values[i] = r[name]
	}

	return values, nil
}

// Values returns the distinct values of a column in first-seen order.
func (d *Dataset) Values(name string) ([]interface{}, error) {
	column, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	values := make([]interface{}, 0)
	for _, v := range column {
		k := valueKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, v)
	}

	return values, nil
}

// valueKey is the text form used for membership tests, rank lookups and
// category labels.
func valueKey(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case []byte:
		return string(vv)
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(vv), 'f', -1, 32)
	case ValueNumber:
		return strconv.FormatFloat(float64(vv), 'f', -1, 64)
	}

	return fmt.Sprintf("%v", v)
}

// toFloat converts a measure value. ok is false for nil, NaN and
// non-numeric text.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch vv := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = vv
	case float32:
		f = float64(vv)
	case int:
		f = float64(vv)
	case int8:
		f = float64(vv)
	case int16:
		f = float64(vv)
	case int32:
		f = float64(vv)
	case int64:
		f = float64(vv)
	case uint:
		f = float64(vv)
	case uint8:
		f = float64(vv)
	case uint16:
		f = float64(vv)
	case uint32:
		f = float64(vv)
	case uint64:
		f = float64(vv)
	case ValueNumber:
		f = float64(vv)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(vv), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case []byte:
		return toFloat(string(vv))
	default:
		return 0, false
	}

	if math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, ValueNumber:
		return true
	}

	return false
}

// compareValues orders scalars naturally: nil first, numbers
// numerically, numbers before text, text lexically.
func compareValues(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	an, bn := isNumber(a), isNumber(b)
	switch {
	case an && bn:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case an:
		return -1
	case bn:
		return 1
	}

	return strings.Compare(valueKey(a), valueKey(b))
}

// SafeNaN replaces NaN and infinities with zero.
func SafeNaN(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
