package pivotchart

import "sort"

// RankMap maps the text form of a value to its display position.
type RankMap map[string]int

// GradeRankMap orders grades K, 1, 2, ..., 12.
func GradeRankMap() RankMap {
	ranks := RankMap{"K": 0}
	for g := 1; g <= 12; g++ {
		ranks[valueKey(int64(g))] = g
	}

	return ranks
}

// Order stable-sorts the rows of resp by sortColumn, which may be a
// dimension, the measure or CategoryColumn. With an empty ranks map the
// column's natural order is used; otherwise rows are sorted by rank and
// values missing from ranks go last. Order is a no-op when sortColumn is
// not a column of resp.
func Order(resp *ItemsResponse, sortColumn DimensionKey, ranks RankMap) *ItemsResponse {
	if !resp.HasColumn(string(sortColumn)) {
		return resp
	}

	col := string(sortColumn)
	if len(ranks) == 0 {
		sort.SliceStable(resp.Rows, func(i, j int) bool {
			return compareValues(resp.sortValue(resp.Rows[i], col), resp.sortValue(resp.Rows[j], col)) < 0
		})
		return resp
	}

	type ranked struct {
		row  *ItemRow
		rank int
		ok   bool
	}

	tmp := make([]ranked, len(resp.Rows))
	for i, row := range resp.Rows {
		rank, ok := ranks[valueKey(resp.sortValue(row, col))]
		tmp[i] = ranked{row: row, rank: rank, ok: ok}
	}

	sort.SliceStable(tmp, func(i, j int) bool {
		a, b := tmp[i], tmp[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.rank < b.rank
	})

	for i := range tmp {
		resp.Rows[i] = tmp[i].row
	}

	return resp
}

// sortValue reads col from row: the measure, the category key or a
// dimension value.
func (r *ItemsResponse) sortValue(row *ItemRow, col string) interface{} {
	switch col {
	case r.Measure:
		if v, ok := row.Metrics[col]; ok {
			return v
		}
		return nil
	case CategoryColumn:
		return row.Category
	}

	return row.Dimensions[col]
}
