package ml

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FamilyLogistic identifies the linear classifier family.
const FamilyLogistic = "LR"

// LogisticRegression is a multinomial softmax classifier trained with
// full-batch gradient descent and elastic-net regularization.
// ElasticNet mixes the penalty: 0 is pure L2, 1 is pure L1.
type LogisticRegression struct {
	MaxIter      int
	RegParam     float64
	ElasticNet   float64
	LearningRate float64

	// Fitted state. Weights is classes x (features+1) with the bias
	// in the last position; biases are not regularized.
	Classes []int
	Weights [][]float64
}

func NewLogisticRegression(maxIter int, regParam, elasticNet float64) *LogisticRegression {
	return &LogisticRegression{
		MaxIter:      maxIter,
		RegParam:     regParam,
		ElasticNet:   elasticNet,
		LearningRate: 0.1,
	}
}

func (m *LogisticRegression) Family() string { return FamilyLogistic }

func (m *LogisticRegression) Clone() Classifier {
	return &LogisticRegression{
		MaxIter:      m.MaxIter,
		RegParam:     m.RegParam,
		ElasticNet:   m.ElasticNet,
		LearningRate: m.LearningRate,
	}
}

func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("logistic: empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("logistic: %d rows but %d labels", len(X), len(y))
	}

	m.Classes = distinctLabels(y)
	k := len(m.Classes)
	d := len(X[0])

	m.Weights = make([][]float64, k)
	for c := range m.Weights {
		m.Weights[c] = make([]float64, d+1)
	}
	if k == 1 {
		// Single observed class; the constant predictor is exact.
		return nil
	}

	classIdx := make(map[int]int, k)
	for i, label := range m.Classes {
		classIdx[label] = i
	}

	n := len(X)
	features := mat.NewDense(n, d, nil)
	for i, row := range X {
		features.SetRow(i, row)
	}

	grad := mat.NewDense(k, d+1, nil)
	probs := make([]float64, k)
	l2 := m.RegParam * (1 - m.ElasticNet)
	l1 := m.RegParam * m.ElasticNet

	for range m.MaxIter {
		grad.Zero()

		for i := range n {
			row := features.RawRowView(i)
			m.scores(row, probs)
			softmax(probs)

			for c := range k {
				delta := probs[c]
				if c == classIdx[y[i]] {
					delta -= 1
				}
				g := grad.RawRowView(c)
				floats.AddScaled(g[:d], delta, row)
				g[d] += delta
			}
		}

		scale := m.LearningRate / float64(n)
		for c := range k {
			w := m.Weights[c]
			g := grad.RawRowView(c)
			for j := range d {
				w[j] -= scale*g[j] + m.LearningRate*l2*w[j]
				w[j] = softThreshold(w[j], m.LearningRate*l1)
			}
			w[d] -= scale * g[d]
		}
	}

	return nil
}

func (m *LogisticRegression) Predict(X [][]float64) ([]int, error) {
	if m.Classes == nil {
		return nil, fmt.Errorf("logistic: predict before fit")
	}

	out := make([]int, len(X))
	scores := make([]float64, len(m.Classes))
	for i, row := range X {
		if len(m.Classes) == 1 {
			out[i] = m.Classes[0]
			continue
		}
		m.scores(row, scores)
		out[i] = m.Classes[floats.MaxIdx(scores)]
	}
	return out, nil
}

// scores fills dst with the unnormalized class scores for row.
func (m *LogisticRegression) scores(row []float64, dst []float64) {
	d := len(row)
	for c, w := range m.Weights {
		dst[c] = floats.Dot(w[:d], row) + w[d]
	}
}

func softmax(scores []float64) {
	max := floats.Max(scores)
	sum := 0.0
	for i, s := range scores {
		scores[i] = math.Exp(s - max)
		sum += scores[i]
	}
	floats.Scale(1/sum, scores)
}

func softThreshold(w, t float64) float64 {
	switch {
	case w > t:
		return w - t
	case w < -t:
		return w + t
	default:
		return 0
	}
}

func distinctLabels(y []int) []int {
	seen := make(map[int]struct{})
	var labels []int
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			labels = append(labels, label)
		}
	}
	sort.Ints(labels)
	return slices.Clip(labels)
}
