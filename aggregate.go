package pivotchart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

type AggregateFn string

const (
	AggSum   AggregateFn = "sum"
	AggMean  AggregateFn = "mean"
	AggCount AggregateFn = "count"
	AggMin   AggregateFn = "min"
	AggMax   AggregateFn = "max"
)

// ParseAggregateFn validates an aggregate function name.
func ParseAggregateFn(s string) (AggregateFn, error) {
	fn := AggregateFn(strings.ToLower(strings.TrimSpace(s)))
	switch fn {
	case AggSum, AggMean, AggCount, AggMin, AggMax:
		return fn, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidAggregate, s)
}

// apply reduces xs. Only order-insensitive functions are supported.
func (fn AggregateFn) apply(xs []float64) (float64, error) {
	sample := stats.Sample{Xs: xs}

	switch fn {
	case AggSum:
		return sample.Sum(), nil
	case AggMean:
		return sample.Mean(), nil
	case AggCount:
		return float64(len(xs)), nil
	case AggMin:
		lo, _ := sample.Bounds()
		return lo, nil
	case AggMax:
		_, hi := sample.Bounds()
		return hi, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidAggregate, string(fn))
}

type group struct {
	values []interface{}
	xs     []float64
}

// Aggregate groups ds by dimensions and reduces measure with fn. With no
// dimensions every row falls into the synthetic AllValue group. Groups
// without a usable measure value are dropped, and rows come back in
// ascending order of their dimension values.
func Aggregate(ds *Dataset, dimensions []DimensionKey, measure string, fn AggregateFn) (*ItemsResponse, error) {
	if _, err := ParseAggregateFn(string(fn)); err != nil {
		return nil, err
	}
	if !ds.HasColumn(measure) {
		return nil, fmt.Errorf("failed to aggregate measure: %w: %q", ErrUnknownColumn, measure)
	}
	for _, d := range dimensions {
		if !ds.HasColumn(string(d)) {
			return nil, fmt.Errorf("failed to group by: %w: %q", ErrUnknownColumn, d)
		}
	}

	groupBy := make([]DimensionKey, len(dimensions))
	copy(groupBy, dimensions)
	synthetic := len(groupBy) == 0
	if synthetic {
		groupBy = []DimensionKey{AllValue}
	}

	index := make(map[string]*group)
	groups := make([]*group, 0)
	for _, r := range ds.rows {
		x, ok := toFloat(r[measure])
		if !ok {
			continue
		}

		values := make([]interface{}, len(groupBy))
		keys := make([]string, len(groupBy))
		for i, d := range groupBy {
			if synthetic {
				values[i] = AllValue
			} else {
				values[i] = r[string(d)]
			}
			keys[i] = valueKey(values[i])
		}

		key := strings.Join(keys, "\x00")
		g, ok := index[key]
		if !ok {
			g = &group{values: values}
			index[key] = g
			groups = append(groups, g)
		}
		g.xs = append(g.xs, x)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].values, groups[j].values
		for k := range a {
			if c := compareValues(a[k], b[k]); c != 0 {
				return c < 0
			}
		}
		return false
	})

	response := &ItemsResponse{
		Dimensions: groupBy,
		Measure:    measure,
		Rows:       make([]*ItemRow, 0, len(groups)),
		Total:      uint64(ds.Len()),
	}

	for _, g := range groups {
		value, err := fn.apply(g.xs)
		if err != nil {
			return nil, err
		}

		row := &ItemRow{
			Dimensions: make(map[string]interface{}, len(groupBy)),
			Metrics:    map[string]ValueNumber{measure: ValueNumber(SafeNaN(value))},
		}
		for i, d := range groupBy {
			row.Dimensions[string(d)] = g.values[i]
		}
		response.Rows = append(response.Rows, row)
	}

	return response, nil
}
