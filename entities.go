package pivotchart

// CategoryColumn is the name under which the category key is exported
// to table records.
const CategoryColumn = "Group"

// AllValue is the synthetic grouping column and value used when no
// dimensions are requested.
const AllValue = "All"

type ValueNumber float64

// ItemRow is one aggregated group.
type ItemRow struct {
	Dimensions map[string]interface{} `json:"dimensions"`
	Metrics    map[string]ValueNumber `json:"metrics"`
	Category   string                 `json:"category"`
}

// ItemsResponse is the aggregated table produced by Aggregate and shaped
// by BuildCategoryKey and Order.
type ItemsResponse struct {
	// Dimensions holds the grouping columns in request order, or the
	// synthetic AllValue column when no dimensions were requested.
	Dimensions []DimensionKey `json:"dimensions"`
	Measure    string         `json:"measure"`
	Rows       []*ItemRow     `json:"rows"`
	// Total is the number of source rows that survived filtering.
	Total uint64 `json:"total"`
}

// HasColumn reports whether name is a column of the aggregated table.
func (r *ItemsResponse) HasColumn(name string) bool {
	if name == "" {
		return false
	}
	if name == r.Measure || name == CategoryColumn {
		return true
	}
	for _, d := range r.Dimensions {
		if string(d) == name {
			return true
		}
	}

	return false
}

func (r *ItemsResponse) hasDimension(key DimensionKey) bool {
	for _, d := range r.Dimensions {
		if d == key {
			return true
		}
	}

	return false
}

type ItemsRequestFilter struct {
	Key       string
	Values    []interface{}
	Condition Condition
}

// ItemsRequest is the per-interaction selection: filters, comparison
// dimensions and the color/pattern encodings.
type ItemsRequest struct {
	Filters []*ItemsRequestFilter
	Groups  []DimensionKey
	Color   DimensionKey
	Pattern DimensionKey
}

type DimensionKey string

// NoDimension marks an absent color or pattern encoding.
const NoDimension DimensionKey = ""

// Metric describes the measure column and how it is aggregated.
type Metric struct {
	Name      string
	Aggregate AggregateFn
}

// Dimension describes a categorical column. Ranks, when set, gives the
// column a non-lexical display order.
type Dimension struct {
	Name  DimensionKey
	Label string
	Ranks RankMap
}
