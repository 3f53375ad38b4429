package ml

import "fmt"

// Metric names accepted by NewEvaluator.
const (
	MetricF1        = "f1"
	MetricAccuracy  = "accuracy"
	MetricPrecision = "precision"
	MetricRecall    = "recall"
)

// Evaluator computes one multiclass classification metric. f1,
// precision and recall are support-weighted across classes.
type Evaluator struct {
	metric string
}

func NewEvaluator(metric string) (*Evaluator, error) {
	switch metric {
	case MetricF1, MetricAccuracy, MetricPrecision, MetricRecall:
		return &Evaluator{metric: metric}, nil
	default:
		return nil, fmt.Errorf("unknown metric %q", metric)
	}
}

func (e *Evaluator) Evaluate(truth, predicted []int) (float64, error) {
	if len(truth) != len(predicted) {
		return 0, fmt.Errorf("evaluate: %d truths but %d predictions", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return 0, fmt.Errorf("evaluate: no rows")
	}

	if e.metric == MetricAccuracy {
		correct := 0
		for i := range truth {
			if truth[i] == predicted[i] {
				correct++
			}
		}
		return float64(correct) / float64(len(truth)), nil
	}

	classes := distinctLabels(append(append([]int{}, truth...), predicted...))
	total := float64(len(truth))
	score := 0.0

	for _, class := range classes {
		tp, fp, fn := 0, 0, 0
		for i := range truth {
			switch {
			case predicted[i] == class && truth[i] == class:
				tp++
			case predicted[i] == class:
				fp++
			case truth[i] == class:
				fn++
			}
		}

		var precision, recall float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}

		var value float64
		switch e.metric {
		case MetricPrecision:
			value = precision
		case MetricRecall:
			value = recall
		case MetricF1:
			if precision+recall > 0 {
				value = 2 * precision * recall / (precision + recall)
			}
		}

		support := float64(tp + fn)
		score += value * support / total
	}

	return score, nil
}
