package selection

import (
	"fmt"

	"github.com/oenolab/winequality/internal/dataset"
	"github.com/oenolab/winequality/internal/engine"
	"github.com/oenolab/winequality/internal/ml"
)

// CrossValidator runs k-fold cross-validated grid search for one
// classifier family and refits the winning hyperparameters on the
// full training frame.
type CrossValidator struct {
	Folds int
}

// Fit evaluates every grid point of the candidate with k-fold cross
// validation on the training frame, scoring held-out folds with F1.
// Fold fits run in parallel on the session. The fold count is clamped
// to the row count so tiny tables still train.
func (cv CrossValidator) Fit(sess *engine.Session, train *dataset.Frame, featureCols []string, labelCol string, cand ml.Candidate) (*ml.FittedPipeline, error) {
	folds := cv.Folds
	if folds < 2 {
		folds = 2
	}
	if train.Rows() < folds {
		folds = train.Rows()
	}
	if folds < 2 {
		return nil, fmt.Errorf("cross validation needs at least 2 rows, got %d", train.Rows())
	}

	evaluator, err := ml.NewEvaluator(ml.MetricF1)
	if err != nil {
		return nil, err
	}
	trainIdx, heldIdx := foldIndices(train.Rows(), folds)

	scores := make([][]float64, len(cand.Grid))
	var tasks []engine.Task

	for g, point := range cand.Grid {
		scores[g] = make([]float64, folds)

		for fold := range folds {
			pipeline := ml.NewPipeline(featureCols, labelCol, cand.New(point))
			fitFold := train.Subset(trainIdx[fold])
			evalFold := train.Subset(heldIdx[fold])

			// each task owns its scores slot, so no locking here
			tasks = append(tasks, func() error {
				score, err := fitAndScore(pipeline, fitFold, evalFold, labelCol, evaluator)
				if err != nil {
					return fmt.Errorf("%s grid point %d fold %d: %w", cand.Name, g, fold, err)
				}
				scores[g][fold] = score
				return nil
			})
		}
	}

	if err := sess.Run(tasks...); err != nil {
		return nil, err
	}

	bestGrid, bestMean := -1, 0.0
	for g := range cand.Grid {
		mean := 0.0
		for fold := range folds {
			mean += scores[g][fold]
		}
		mean /= float64(folds)
		if bestGrid < 0 || mean > bestMean {
			bestGrid, bestMean = g, mean
		}
	}

	winner := ml.NewPipeline(featureCols, labelCol, cand.New(cand.Grid[bestGrid]))
	fitted, err := winner.Fit(train)
	if err != nil {
		return nil, fmt.Errorf("refitting %s winner: %w", cand.Name, err)
	}
	return fitted, nil
}

func fitAndScore(p *ml.Pipeline, fitFold, evalFold *dataset.Frame, labelCol string, evaluator *ml.Evaluator) (float64, error) {
	fitted, err := p.Fit(fitFold)
	if err != nil {
		return 0, err
	}
	pred, err := fitted.Predict(evalFold)
	if err != nil {
		return 0, err
	}
	truth, err := ml.LabelValues(evalFold, labelCol)
	if err != nil {
		return 0, err
	}
	return evaluator.Evaluate(truth, pred)
}

// foldIndices deals rows round-robin into folds and returns, per
// fold, the training and held-out row indices.
func foldIndices(rows, folds int) (train, held [][]int) {
	train = make([][]int, folds)
	held = make([][]int, folds)
	for i := range rows {
		fold := i % folds
		held[fold] = append(held[fold], i)
		for f := range folds {
			if f != fold {
				train[f] = append(train[f], i)
			}
		}
	}
	return train, held
}
