package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/oenolab/winequality/internal/ml"
	"github.com/oenolab/winequality/internal/shared/logging"
	"github.com/oenolab/winequality/internal/storage"
)

// Store persists fitted pipelines under a fixed object-store prefix
// and loads them back through a local landing directory.
type Store struct {
	objects    storage.ObjectStore
	prefix     string
	landingDir string
	logger     logging.Logger
}

func NewStore(objects storage.ObjectStore, prefix, landingDir string, logger logging.Logger) *Store {
	return &Store{
		objects:    objects,
		prefix:     prefix,
		landingDir: landingDir,
		logger:     logger,
	}
}

// Save serializes the pipeline and uploads it to the artifact prefix,
// replacing whatever artifact was there before.
func (s *Store) Save(ctx context.Context, fitted *ml.FittedPipeline) error {
	dir, err := os.MkdirTemp("", "winequality-artifact-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	if err := ml.SaveFitted(dir, fitted); err != nil {
		return fmt.Errorf("serializing model: %w", err)
	}
	if err := storage.UploadDir(ctx, s.objects, dir, s.prefix); err != nil {
		return fmt.Errorf("uploading model: %w", err)
	}

	s.logger.Info("Best model saved", "prefix", s.prefix, "family", fitted.Classifier.Family())
	return nil
}

// Load downloads the artifact tree into a fresh landing directory and
// deserializes it. Individual download failures are logged and do not
// stop the remaining copies, but the resulting tree must be complete:
// a partial artifact fails the load.
func (s *Store) Load(ctx context.Context) (*ml.FittedPipeline, error) {
	dir := filepath.Join(s.landingDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	failed, err := storage.DownloadPrefix(ctx, s.objects, s.prefix, dir, s.logger)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		s.logger.Warn("Artifact download incomplete", "prefix", s.prefix, "failed_keys", len(failed))
	}

	fitted, err := ml.LoadFitted(dir)
	if err != nil {
		return nil, fmt.Errorf("loading model from %s: %w", s.prefix, err)
	}

	s.logger.Info("Best model loaded", "prefix", s.prefix, "family", fitted.Classifier.Family())
	return fitted, nil
}
