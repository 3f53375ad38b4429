package selection

import (
	"fmt"

	"github.com/oenolab/winequality/internal/dataset"
	"github.com/oenolab/winequality/internal/engine"
	"github.com/oenolab/winequality/internal/ml"
	"github.com/oenolab/winequality/internal/shared/logging"
)

// Selector searches both classifier families and keeps the fitted
// pipeline with the highest validation F1. The tracked best score
// never decreases while candidates are evaluated, and ties keep the
// earlier model.
type Selector struct {
	Folds  int
	Logger logging.Logger
}

func NewSelector(folds int, logger logging.Logger) *Selector {
	return &Selector{Folds: folds, Logger: logger}
}

// SelectBest runs cross-validated grid search per family on the
// training frame, scores each family's winner on the independent
// validation frame, and returns the overall best fitted pipeline with
// its validation F1. Fitting errors are fatal and propagate.
func (s *Selector) SelectBest(sess *engine.Session, train, valid *dataset.Frame, featureCols []string, labelCol string) (*ml.FittedPipeline, float64, error) {
	evaluator, err := ml.NewEvaluator(ml.MetricF1)
	if err != nil {
		return nil, 0, err
	}
	truth, err := ml.LabelValues(valid, labelCol)
	if err != nil {
		return nil, 0, err
	}

	cv := CrossValidator{Folds: s.Folds}

	bestScore := 0.0
	var best *ml.FittedPipeline

	for _, cand := range ml.Candidates() {
		fitted, err := cv.Fit(sess, train, featureCols, labelCol, cand)
		if err != nil {
			return nil, 0, err
		}

		pred, err := fitted.Predict(valid)
		if err != nil {
			return nil, 0, err
		}
		score, err := evaluator.Evaluate(truth, pred)
		if err != nil {
			return nil, 0, err
		}

		if score > bestScore {
			bestScore, best = score, fitted
			s.Logger.Info("New best model", "family", cand.Name, "validation_f1", fmt.Sprintf("%.2f", score))
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf("no candidate scored above zero validation F1")
	}
	return best, bestScore, nil
}
