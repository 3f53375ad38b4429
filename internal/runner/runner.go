package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/oenolab/winequality/internal/artifact"
	"github.com/oenolab/winequality/internal/dataset"
	"github.com/oenolab/winequality/internal/engine"
	"github.com/oenolab/winequality/internal/selection"
	"github.com/oenolab/winequality/internal/shared/config"
	"github.com/oenolab/winequality/internal/shared/logging"
	"github.com/oenolab/winequality/internal/storage"
)

// ErrDatasetUnavailable marks the recoverable failure tier: a dataset
// could not be fetched, the dependent step was skipped, and the error
// was already logged.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// Runner wires the fixed pipeline together: fetch, classify schema,
// then train and/or predict. The object store and logger are owned by
// the caller and passed in explicitly.
type Runner struct {
	cfg    *config.Config
	store  storage.ObjectStore
	logger logging.Logger
}

func New(cfg *config.Config, store storage.ObjectStore, logger logging.Logger) *Runner {
	return &Runner{cfg: cfg, store: store, logger: logger}
}

// Run opens the compute session, executes the requested paths and
// always closes the session, whichever paths ran. Recoverable dataset
// failures abort their path with ErrDatasetUnavailable; anything else
// is fatal.
func (r *Runner) Run(ctx context.Context, doTrain, doPredict bool) error {
	sess := engine.NewSession(r.cfg.Engine.Workers, r.logger)
	defer sess.Close()

	artifacts := artifact.NewStore(r.store, r.cfg.Model.Prefix, r.cfg.Model.LandingDir, r.logger)

	var aborted error

	if doTrain {
		if err := r.train(ctx, sess, artifacts); err != nil {
			if !errors.Is(err, ErrDatasetUnavailable) {
				return err
			}
			// already logged; the predict path does not depend on it
			aborted = err
		}
	}

	if doPredict {
		if err := r.predict(ctx, artifacts); err != nil {
			if !errors.Is(err, ErrDatasetUnavailable) {
				return err
			}
			aborted = err
		}
	}

	return aborted
}

func (r *Runner) train(ctx context.Context, sess *engine.Session, artifacts *artifact.Store) error {
	r.logger.Info("Starting model training")

	train := dataset.FetchFrame(ctx, r.store, r.cfg.Datasets.Training, dataset.WineTransform, r.logger)
	if train == nil {
		return fmt.Errorf("training dataset %q: %w", r.cfg.Datasets.Training, ErrDatasetUnavailable)
	}
	valid := dataset.FetchFrame(ctx, r.store, r.cfg.Datasets.Validation, dataset.WineTransform, r.logger)
	if valid == nil {
		return fmt.Errorf("validation dataset %q: %w", r.cfg.Datasets.Validation, ErrDatasetUnavailable)
	}

	labelCol := r.cfg.Datasets.LabelCol
	roles := dataset.ClassifyColumns(train, r.cfg.Selection.CategoricalCeiling, r.cfg.Selection.CardinalityFloor)
	features := roles.FeatureColumns(labelCol)
	if len(features) == 0 {
		// On very small tables every numeric column is low-cardinality
		// and the classification yields nothing; fall back to all
		// numeric columns rather than training on an empty vector.
		features = numericFeatures(train, labelCol)
		r.logger.Warn("Column classification produced no features, using all numeric columns",
			"features", len(features))
	}
	if len(features) == 0 {
		return fmt.Errorf("no usable feature columns in %q", r.cfg.Datasets.Training)
	}
	r.logger.Info("Classified columns",
		"categorical", len(roles.Categorical),
		"numeric", len(roles.Numeric),
		"high_cardinality", len(roles.HighCardinality),
		"features", len(features),
	)

	selector := selection.NewSelector(r.cfg.Selection.Folds, r.logger)
	best, score, err := selector.SelectBest(sess, train, valid, features, labelCol)
	if err != nil {
		return fmt.Errorf("model selection: %w", err)
	}

	if err := artifacts.Save(ctx, best); err != nil {
		return err
	}
	r.logger.Info("Training finished", "validation_f1", fmt.Sprintf("%.2f", score))
	return nil
}

func numericFeatures(frame *dataset.Frame, labelCol string) []string {
	var features []string
	for _, name := range frame.ColumnNames() {
		col, _ := frame.Column(name)
		if name != labelCol && col.Type != dataset.TypeString {
			features = append(features, name)
		}
	}
	return features
}
