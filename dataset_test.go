package pivotchart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testEnrollment() *Dataset {
	return NewDataset([]string{"School", "Grade", "Gender", "Students"}, []Row{
		{"School": "Lincoln", "Grade": "1", "Gender": "Female", "Students": int64(10)},
		{"School": "Lincoln", "Grade": "K", "Gender": "Male", "Students": int64(5)},
		{"School": "Kennedy", "Grade": "2", "Gender": "Female", "Students": int64(8)},
		{"School": "Kennedy", "Grade": "K", "Gender": "Female", "Students": int64(3)},
		{"School": "Lincoln", "Grade": "2", "Gender": "Male", "Students": int64(4)},
		{"School": "Kennedy", "Grade": "1", "Gender": "Male", "Students": int64(6)},
	})
}

func TestDataset_NewDatasetCopies(t *testing.T) {
	t.Parallel()

	columns := []string{"a", "b"}
	rows := []Row{{"a": 1, "b": "x", "extra": true}}

	ds := NewDataset(columns, rows)
	columns[0] = "changed"
	rows[0]["a"] = 2

	require.Equal(t, []string{"a", "b"}, ds.Columns())
	require.Equal(t, Row{"a": 1, "b": "x"}, ds.Row(0))

	row := ds.Row(0)
	row["a"] = 3
	require.Equal(t, 1, ds.Row(0)["a"])
}

func TestDataset_Values(t *testing.T) {
	t.Parallel()

	ds := testEnrollment()

	values, err := ds.Values("School")
	require.NoError(t, err)
	require.Equal(t, []interface{}{"Lincoln", "Kennedy"}, values)

	grades, err := ds.Values("Grade")
	require.NoError(t, err)
	require.Equal(t, []interface{}{"1", "K", "2"}, grades)

	_, err = ds.Values("Race")
	require.ErrorIs(t, err, ErrUnknownColumn)

	column, err := ds.Column("Students")
	require.NoError(t, err)
	require.Len(t, column, 6)
}

func Test_valueKey(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{name: "nil", input: nil, expected: ""},
		{name: "string", input: "K", expected: "K"},
		{name: "bytes", input: []byte("K"), expected: "K"},
		{name: "int", input: 1, expected: "1"},
		{name: "int64", input: int64(12), expected: "12"},
		{name: "whole float", input: 2019.0, expected: "2019"},
		{name: "float", input: 71.25, expected: "71.25"},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, valueKey(tc.input))
		})
	}
}

func Test_toFloat(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name     string
		input    interface{}
		expected float64
		ok       bool
	}{
		{name: "nil", input: nil},
		{name: "NaN", input: math.NaN()},
		{name: "text", input: "Lincoln"},
		{name: "numeric text", input: " 12.5 ", expected: 12.5, ok: true},
		{name: "int64", input: int64(7), expected: 7, ok: true},
		{name: "uint32", input: uint32(7), expected: 7, ok: true},
		{name: "value number", input: ValueNumber(1.5), expected: 1.5, ok: true},
		{name: "bool", input: true},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, ok := toFloat(tc.input)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.expected, f)
		})
	}
}

func Test_compareValues(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, compareValues(nil, nil))
	require.Equal(t, -1, compareValues(nil, "a"))
	require.Equal(t, 1, compareValues(int64(1), nil))
	require.Equal(t, -1, compareValues(int64(2), 10.0))
	require.Equal(t, 0, compareValues(int64(2), 2.0))
	require.Equal(t, -1, compareValues(int64(100), "1"))
	require.Equal(t, 1, compareValues("b", "a"))
}

func Test_SafeNaN(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0.0, SafeNaN(math.NaN()))
	require.Equal(t, 0.0, SafeNaN(math.Inf(1)))
	require.Equal(t, 1.5, SafeNaN(1.5))
}
