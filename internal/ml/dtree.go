package ml

import (
	"fmt"
	"math"
	"sort"
)

// FamilyTree identifies the decision-tree classifier family.
const FamilyTree = "DT"

const (
	ImpurityGini    = "gini"
	ImpurityEntropy = "entropy"
)

// DecisionTree is a CART-style multiclass classifier splitting on
// binned numeric thresholds. MaxBins caps the number of candidate
// thresholds evaluated per feature.
type DecisionTree struct {
	MaxDepth int
	MaxBins  int
	Impurity string

	Classes []int
	Root    *TreeNode
}

// TreeNode fields are exported so a fitted tree survives gob encoding.
type TreeNode struct {
	Leaf      bool
	ClassIdx  int
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
}

func NewDecisionTree(maxDepth, maxBins int, impurity string) *DecisionTree {
	return &DecisionTree{
		MaxDepth: maxDepth,
		MaxBins:  maxBins,
		Impurity: impurity,
	}
}

func (t *DecisionTree) Family() string { return FamilyTree }

func (t *DecisionTree) Clone() Classifier {
	return &DecisionTree{
		MaxDepth: t.MaxDepth,
		MaxBins:  t.MaxBins,
		Impurity: t.Impurity,
	}
}

func (t *DecisionTree) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("dtree: empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("dtree: %d rows but %d labels", len(X), len(y))
	}
	if t.Impurity != ImpurityGini && t.Impurity != ImpurityEntropy {
		return fmt.Errorf("dtree: unknown impurity %q", t.Impurity)
	}

	t.Classes = distinctLabels(y)
	classIdx := make(map[int]int, len(t.Classes))
	for i, label := range t.Classes {
		classIdx[label] = i
	}
	indexed := make([]int, len(y))
	for i, label := range y {
		indexed[i] = classIdx[label]
	}

	rows := make([]int, len(X))
	for i := range rows {
		rows[i] = i
	}
	t.Root = t.grow(X, indexed, rows, 0)
	return nil
}

func (t *DecisionTree) Predict(X [][]float64) ([]int, error) {
	if t.Root == nil {
		return nil, fmt.Errorf("dtree: predict before fit")
	}

	out := make([]int, len(X))
	for i, row := range X {
		node := t.Root
		for !node.Leaf {
			if row[node.Feature] <= node.Threshold {
				node = node.Left
			} else {
				node = node.Right
			}
		}
		out[i] = t.Classes[node.ClassIdx]
	}
	return out, nil
}

func (t *DecisionTree) grow(X [][]float64, y []int, rows []int, depth int) *TreeNode {
	counts := t.classCounts(y, rows)
	if depth >= t.MaxDepth || isPure(counts) || len(rows) < 2 {
		return &TreeNode{Leaf: true, ClassIdx: argmax(counts)}
	}

	feature, threshold, ok := t.bestSplit(X, y, rows, counts)
	if !ok {
		return &TreeNode{Leaf: true, ClassIdx: argmax(counts)}
	}

	var left, right []int
	for _, i := range rows {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.grow(X, y, left, depth+1),
		Right:     t.grow(X, y, right, depth+1),
	}
}

// bestSplit scans every feature's binned thresholds for the split
// with the largest impurity decrease.
func (t *DecisionTree) bestSplit(X [][]float64, y []int, rows []int, counts []int) (feature int, threshold float64, ok bool) {
	parent := t.impurity(counts, len(rows))
	bestGain := 0.0

	nFeatures := len(X[rows[0]])
	leftCounts := make([]int, len(t.Classes))
	rightCounts := make([]int, len(t.Classes))

	for f := range nFeatures {
		for _, cut := range t.thresholds(X, rows, f) {
			for i := range leftCounts {
				leftCounts[i], rightCounts[i] = 0, 0
			}
			nLeft := 0
			for _, i := range rows {
				if X[i][f] <= cut {
					leftCounts[y[i]]++
					nLeft++
				} else {
					rightCounts[y[i]]++
				}
			}
			nRight := len(rows) - nLeft
			if nLeft == 0 || nRight == 0 {
				continue
			}

			weighted := (float64(nLeft)*t.impurity(leftCounts, nLeft) +
				float64(nRight)*t.impurity(rightCounts, nRight)) / float64(len(rows))
			if gain := parent - weighted; gain > bestGain {
				bestGain = gain
				feature = f
				threshold = cut
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// thresholds returns up to MaxBins candidate cut points for a feature,
// taken as midpoints between consecutive distinct values.
func (t *DecisionTree) thresholds(X [][]float64, rows []int, feature int) []float64 {
	values := make([]float64, 0, len(rows))
	for _, i := range rows {
		values = append(values, X[i][feature])
	}
	sort.Float64s(values)

	var cuts []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			cuts = append(cuts, (values[i]+values[i-1])/2)
		}
	}
	if len(cuts) <= t.MaxBins {
		return cuts
	}

	sampled := make([]float64, 0, t.MaxBins)
	step := float64(len(cuts)) / float64(t.MaxBins)
	for i := range t.MaxBins {
		sampled = append(sampled, cuts[int(float64(i)*step)])
	}
	return sampled
}

func (t *DecisionTree) classCounts(y []int, rows []int) []int {
	counts := make([]int, len(t.Classes))
	for _, i := range rows {
		counts[y[i]]++
	}
	return counts
}

func (t *DecisionTree) impurity(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	switch t.Impurity {
	case ImpurityEntropy:
		e := 0.0
		for _, c := range counts {
			if c > 0 {
				p := float64(c) / float64(total)
				e -= p * math.Log2(p)
			}
		}
		return e
	default:
		g := 1.0
		for _, c := range counts {
			p := float64(c) / float64(total)
			g -= p * p
		}
		return g
	}
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
