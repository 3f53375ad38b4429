package runner

import (
	"context"
	"fmt"

	"github.com/oenolab/winequality/internal/artifact"
	"github.com/oenolab/winequality/internal/dataset"
	"github.com/oenolab/winequality/internal/ml"
)

// previewRows bounds how many predictions are echoed to the log.
const previewRows = 20

// Metrics holds the classification metrics reported after scoring.
type Metrics struct {
	F1        float64
	Accuracy  float64
	Precision float64
	Recall    float64
}

func (r *Runner) predict(ctx context.Context, artifacts *artifact.Store) error {
	r.logger.Info("Downloading the best model")
	fitted, err := artifacts.Load(ctx)
	if err != nil {
		return err
	}

	_, err = r.Score(ctx, fitted)
	return err
}

// Score fetches the test dataset, applies the fitted pipeline and
// reports F1, accuracy, precision and recall. Predictions are paired
// with the held-out true labels by row index, which both sides carry
// from the same frame.
func (r *Runner) Score(ctx context.Context, fitted *ml.FittedPipeline) (*Metrics, error) {
	frame := dataset.FetchFrame(ctx, r.store, r.cfg.Datasets.Test, dataset.WineTransform, r.logger)
	if frame == nil {
		r.logger.Error("Failed to fetch new data for prediction", "key", r.cfg.Datasets.Test)
		return nil, fmt.Errorf("test dataset %q: %w", r.cfg.Datasets.Test, ErrDatasetUnavailable)
	}

	labelCol := r.cfg.Datasets.LabelCol
	truth, err := ml.LabelValues(frame, labelCol)
	if err != nil {
		return nil, err
	}

	predictions, err := fitted.Predict(frame.Drop(labelCol))
	if err != nil {
		return nil, fmt.Errorf("scoring test data: %w", err)
	}

	for i := 0; i < len(predictions) && i < previewRows; i++ {
		r.logger.Info("Prediction", "row", i, "predicted", predictions[i], "actual", truth[i])
	}

	metrics, err := EvaluatePredictions(truth, predictions)
	if err != nil {
		return nil, err
	}

	r.logger.Info("F1 Score", "value", fmt.Sprintf("%.2f", metrics.F1))
	r.logger.Info("Accuracy", "value", fmt.Sprintf("%.2f", metrics.Accuracy))
	r.logger.Info("Precision", "value", fmt.Sprintf("%.2f", metrics.Precision))
	r.logger.Info("Recall", "value", fmt.Sprintf("%.2f", metrics.Recall))

	return metrics, nil
}

// EvaluatePredictions computes the four reported metrics, each with a
// freshly constructed evaluator.
func EvaluatePredictions(truth, predictions []int) (*Metrics, error) {
	var metrics Metrics
	for metric, dst := range map[string]*float64{
		ml.MetricF1:        &metrics.F1,
		ml.MetricAccuracy:  &metrics.Accuracy,
		ml.MetricPrecision: &metrics.Precision,
		ml.MetricRecall:    &metrics.Recall,
	} {
		evaluator, err := ml.NewEvaluator(metric)
		if err != nil {
			return nil, err
		}
		score, err := evaluator.Evaluate(truth, predictions)
		if err != nil {
			return nil, err
		}
		*dst = score
	}
	return &metrics, nil
}
