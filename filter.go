package pivotchart

import (
	"fmt"
	"strings"
)

// Condition selects how a filter compares column values. The zero value
// is membership in the filter values.
type Condition string

const (
	CondEq  Condition = "eq"
	CondEq2 Condition = "="

	CondNotEq  Condition = "neq"
	CondNotEq2 Condition = "!="

	// CondLike keeps rows whose text contains any filter value.
	CondLike Condition = "like"

	// Ordering conditions compare against the first filter value only.
	CondGreater     Condition = ">"
	CondGreaterOrEq Condition = ">="
	CondLess        Condition = "<"
	CondLessOrEq    Condition = "<="
)

// Filter returns the rows of ds matching every filter. A filter with no
// values keeps all rows, so an empty selection means "show everything".
func Filter(ds *Dataset, filters []*ItemsRequestFilter) (*Dataset, error) {
	rows := ds.rows

	for _, filter := range filters {
		if filter == nil {
			continue
		}
		if !ds.HasColumn(filter.Key) {
			return nil, fmt.Errorf("failed to apply filter: %w: %q", ErrUnknownColumn, filter.Key)
		}
		if len(filter.Values) == 0 {
			continue
		}

		match := matcher(filter)
		kept := make([]Row, 0, len(rows))
		for _, r := range rows {
			if match(r[filter.Key]) {
				kept = append(kept, r)
			}
		}
		rows = kept
	}

	return ds.subset(rows), nil
}

func matcher(filter *ItemsRequestFilter) func(interface{}) bool {
	switch filter.Condition {
	case CondNotEq, CondNotEq2:
		in := valueSet(filter.Values)
		return func(v interface{}) bool {
			_, ok := in[valueKey(v)]
			return !ok
		}

	case CondLike:
		return func(v interface{}) bool {
			text := valueKey(v)
			for _, want := range filter.Values {
				if strings.Contains(text, valueKey(want)) {
					return true
				}
			}
			return false
		}

	case CondGreater, CondGreaterOrEq, CondLess, CondLessOrEq:
		bound := filter.Values[0]
		return func(v interface{}) bool {
			if v == nil {
				return false
			}
			c := compareScalar(v, bound)
			switch filter.Condition {
			case CondGreater:
				return c > 0
			case CondGreaterOrEq:
				return c >= 0
			case CondLess:
				return c < 0
			default:
				return c <= 0
			}
		}

	default:
		in := valueSet(filter.Values)
		return func(v interface{}) bool {
			_, ok := in[valueKey(v)]
			return ok
		}
	}
}

// compareScalar compares numerically when both sides parse as numbers,
// so a text bound like "2019" still works against int64 columns.
func compareScalar(a, b interface{}) int {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}

	return strings.Compare(valueKey(a), valueKey(b))
}

func valueSet(values []interface{}) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[valueKey(v)] = struct{}{}
	}

	return set
}
