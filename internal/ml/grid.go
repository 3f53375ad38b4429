package ml

// ParamMap is one hyperparameter combination.
type ParamMap map[string]any

// GridBuilder builds the cross product of hyperparameter values, in
// declaration order: later Add calls vary fastest.
type GridBuilder struct {
	names  []string
	values [][]any
}

func NewGridBuilder() *GridBuilder {
	return &GridBuilder{}
}

func (b *GridBuilder) Add(name string, values ...any) *GridBuilder {
	b.names = append(b.names, name)
	b.values = append(b.values, values)
	return b
}

func (b *GridBuilder) Build() []ParamMap {
	grid := []ParamMap{{}}
	for i, name := range b.names {
		next := make([]ParamMap, 0, len(grid)*len(b.values[i]))
		for _, point := range grid {
			for _, value := range b.values[i] {
				expanded := make(ParamMap, len(point)+1)
				for k, v := range point {
					expanded[k] = v
				}
				expanded[name] = value
				next = append(next, expanded)
			}
		}
		grid = next
	}
	return grid
}

// Candidate pairs a classifier family with its hyperparameter grid.
type Candidate struct {
	Name string
	Grid []ParamMap
	New  func(ParamMap) Classifier
}

// Candidates returns the two classifier families searched during
// model selection, in evaluation order.
func Candidates() []Candidate {
	return []Candidate{
		{
			Name: FamilyLogistic,
			Grid: NewGridBuilder().
				Add("max_iter", 10, 20, 50).
				Add("reg_param", 0.01, 0.1, 0.5).
				Add("elastic_net", 0.0, 0.5, 1.0).
				Build(),
			New: func(p ParamMap) Classifier {
				return NewLogisticRegression(
					p["max_iter"].(int),
					p["reg_param"].(float64),
					p["elastic_net"].(float64),
				)
			},
		},
		{
			Name: FamilyTree,
			Grid: NewGridBuilder().
				Add("max_depth", 3, 5, 10).
				Add("max_bins", 20, 40, 60).
				Add("impurity", ImpurityEntropy, ImpurityGini).
				Build(),
			New: func(p ParamMap) Classifier {
				return NewDecisionTree(
					p["max_depth"].(int),
					p["max_bins"].(int),
					p["impurity"].(string),
				)
			},
		},
	}
}
