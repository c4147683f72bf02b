package pivotchart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		filters  []*ItemsRequestFilter
		expected []int64
		err      error
	}{
		{
			name:     "no filters",
			expected: []int64{10, 5, 8, 3, 4, 6},
		},
		{
			name: "empty values keep everything",
			filters: []*ItemsRequestFilter{
				{Key: "School", Values: []interface{}{}},
				nil,
			},
			expected: []int64{10, 5, 8, 3, 4, 6},
		},
		{
			name: "membership",
			filters: []*ItemsRequestFilter{
				{Key: "School", Values: []interface{}{"Lincoln"}},
			},
			expected: []int64{10, 5, 4},
		},
		{
			name: "filters are combined",
			filters: []*ItemsRequestFilter{
				{Key: "School", Values: []interface{}{"Lincoln", "Kennedy"}},
				{Key: "Grade", Values: []interface{}{"K", 1}, Condition: CondEq},
			},
			expected: []int64{10, 5, 3, 6},
		},
		{
			name: "no match",
			filters: []*ItemsRequestFilter{
				{Key: "School", Values: []interface{}{"Adams"}},
			},
			expected: []int64{},
		},
		{
			name: "not equal",
			filters: []*ItemsRequestFilter{
				{Key: "Gender", Values: []interface{}{"Female"}, Condition: CondNotEq},
			},
			expected: []int64{5, 4, 6},
		},
		{
			name: "like",
			filters: []*ItemsRequestFilter{
				{Key: "School", Values: []interface{}{"enn"}, Condition: CondLike},
			},
			expected: []int64{8, 3, 6},
		},
		{
			name: "greater or equal with text bound",
			filters: []*ItemsRequestFilter{
				{Key: "Students", Values: []interface{}{"6"}, Condition: CondGreaterOrEq},
			},
			expected: []int64{10, 8, 6},
		},
		{
			name: "less",
			filters: []*ItemsRequestFilter{
				{Key: "Students", Values: []interface{}{5}, Condition: CondLess},
			},
			expected: []int64{3, 4},
		},
		{
			name: "unknown column",
			filters: []*ItemsRequestFilter{
				{Key: "Race", Values: []interface{}{"White"}},
			},
			err: ErrUnknownColumn,
		},
		{
			name: "unknown column with empty values",
			filters: []*ItemsRequestFilter{
				{Key: "Race"},
			},
			err: ErrUnknownColumn,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ds := testEnrollment()
			filtered, err := Filter(ds, tc.filters)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, ds.Columns(), filtered.Columns())

			students, err := filtered.Column("Students")
			require.NoError(t, err)
			got := make([]int64, len(students))
			for j, v := range students {
				got[j] = v.(int64)
			}
			require.Equal(t, tc.expected, got)
			require.Equal(t, 6, ds.Len())
		})
	}
}
