package pivotchart

const (
	TableEnrollment   = "curr_enrollment"
	TableGradOutcomes = "grad_outcomes"
	TableTestResults  = "test_results"
)

// demographicDimensions are the comparison options shared by every page.
func demographicDimensions() []*Dimension {
	return []*Dimension{
		{Name: "School", Label: "Schools"},
		{Name: "Grade", Label: "Grades", Ranks: GradeRankMap()},
		{Name: "Gender", Label: "Genders"},
		{Name: "Race", Label: "Races"},
		{Name: "Ethnicity", Label: "Ethnicities"},
	}
}

func demographicKeys() []DimensionKey {
	dims := demographicDimensions()
	keys := make([]DimensionKey, len(dims))
	for i, d := range dims {
		keys[i] = d.Name
	}

	return keys
}

// EnrollmentPage compares current enrollment counts.
func EnrollmentPage() *Page {
	return &Page{
		Name:  "current_enrollment",
		Path:  "/",
		Title: "Current Enrollment",
		Table: TableEnrollment,
		Schema: Schema{
			Metric:     Metric{Name: "Students", Aggregate: AggSum},
			Dimensions: demographicDimensions(),
			Filterable: demographicKeys(),
			SortBy:     "Grade",
		},
		Chart:         ChartBar,
		DefaultGroups: []DimensionKey{"School"},
		DefaultColor:  "School",
		BarMode:       BarModeGroup,
	}
}

// GradOutcomesPage always compares starting year and outcome.
func GradOutcomesPage() *Page {
	return &Page{
		Name:  "grad_outcomes",
		Path:  "/grad_outcomes",
		Title: "Graduation Outcomes",
		Table: TableGradOutcomes,
		Schema: Schema{
			Metric:     Metric{Name: "Students", Aggregate: AggSum},
			Dimensions: demographicDimensions(),
			Filterable: append([]DimensionKey{"Starting_Year"}, demographicKeys()...),
			SortBy:     "Grade",
		},
		Chart:           ChartBar,
		FixedDimensions: []DimensionKey{"Starting_Year", "Outcome"},
		EncodingOptions: []DimensionKey{"Outcome", "Starting_Year"},
		DefaultGroups:   []DimensionKey{},
		DefaultColor:    "Outcome",
		BarMode:         BarModeGroup,
	}
}

// TestResultsPage plots mean scores per period. Color and dash style
// follow the first two comparisons.
func TestResultsPage() *Page {
	precision := 1

	return &Page{
		Name:  "test_results",
		Path:  "/test_results",
		Title: "Test Results",
		Table: TableTestResults,
		Schema: Schema{
			Metric:     Metric{Name: "Score", Aggregate: AggMean},
			Dimensions: demographicDimensions(),
			Filterable: demographicKeys(),
			SortBy:     "Grade",
		},
		Chart:           ChartLine,
		FixedDimensions: []DimensionKey{"Period"},
		AutoEncodings:   true,
		DefaultGroups:   []DimensionKey{"School"},
		LabelPrecision:  &precision,
		TablePrecision:  &precision,
		Markers:         true,
	}
}

// Pages returns the dashboard pages in navigation order.
func Pages() []*Page {
	return []*Page{EnrollmentPage(), GradOutcomesPage(), TestResultsPage()}
}
