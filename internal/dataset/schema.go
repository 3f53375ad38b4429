package dataset

import "slices"

// ColumnRoles partitions a frame's columns into feature roles.
type ColumnRoles struct {
	// Categorical holds string columns with a bounded number of
	// distinct values.
	Categorical []string
	// Numeric holds the numeric measurement columns.
	Numeric []string
	// HighCardinality holds string columns with too many distinct
	// values to one-hot sensibly; they are excluded from features.
	HighCardinality []string
}

// DefaultCategoricalCeiling and DefaultCardinalityFloor are the
// distinct-count thresholds used when classifying columns.
const (
	DefaultCategoricalCeiling = 10
	DefaultCardinalityFloor   = 20
)

// ClassifyColumns buckets every column by type tag and distinct count.
// String columns with more than carFloor distinct values are
// high-cardinality, the rest categorical. Numeric columns with fewer
// than catCeiling distinct values are treated as categorical in
// spirit but deliberately end up in neither output set: they are
// subtracted from the numeric set without being added to the
// categorical one. Output ordering follows frame column order, so the
// classification is deterministic.
func ClassifyColumns(f *Frame, catCeiling, carFloor int) ColumnRoles {
	var categorical, numButCat, highCard []string

	for _, name := range f.ColumnNames() {
		col, _ := f.Column(name)
		distinct := col.distinctCount()

		if col.Type == TypeString {
			if distinct > carFloor {
				highCard = append(highCard, name)
			} else {
				categorical = append(categorical, name)
			}
		} else if distinct < catCeiling {
			numButCat = append(numButCat, name)
		}
	}

	categorical = subtract(categorical, highCard)

	var numeric []string
	for _, name := range f.ColumnNames() {
		col, _ := f.Column(name)
		if col.Type != TypeString && !slices.Contains(numButCat, name) {
			numeric = append(numeric, name)
		}
	}

	return ColumnRoles{
		Categorical:     categorical,
		Numeric:         numeric,
		HighCardinality: highCard,
	}
}

// FeatureColumns returns the selected feature columns in stable order,
// with the label column excluded.
func (r ColumnRoles) FeatureColumns(labelCol string) []string {
	var features []string
	for _, name := range r.Categorical {
		if name != labelCol {
			features = append(features, name)
		}
	}
	for _, name := range r.Numeric {
		if name != labelCol {
			features = append(features, name)
		}
	}
	return features
}

func subtract(from, remove []string) []string {
	var out []string
	for _, name := range from {
		if !slices.Contains(remove, name) {
			out = append(out, name)
		}
	}
	return out
}
