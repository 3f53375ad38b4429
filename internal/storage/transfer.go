package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oenolab/winequality/internal/shared/logging"
)

// IsPattern reports whether key contains glob metacharacters and must
// be resolved with ListGlob before it names fetchable objects.
func IsPattern(key string) bool {
	return strings.ContainsAny(key, "*?[{")
}

// ListGlob lists keys under the pattern's fixed prefix and keeps the
// ones matching the doublestar pattern, e.g. "datasets/**/*.csv".
func ListGlob(ctx context.Context, store ObjectStore, pattern string) ([]string, error) {
	prefix := fixedPrefix(pattern)
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, key := range keys {
		ok, err := doublestar.Match(pattern, key)
		if err != nil {
			return nil, fmt.Errorf("bad key pattern %q: %w", pattern, err)
		}
		if ok {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

func fixedPrefix(pattern string) string {
	for i, r := range pattern {
		if r == '*' || r == '?' || r == '[' || r == '{' {
			return pattern[:i]
		}
	}
	return pattern
}

// DownloadPrefix copies every object under prefix into localDir,
// mirroring the key structure below the prefix. Each object is copied
// independently: a failed download is logged and skipped, the rest of
// the tree is still copied, and the failed keys are returned so the
// caller can decide whether a partial tree is usable.
func DownloadPrefix(ctx context.Context, store ObjectStore, prefix, localDir string, logger logging.Logger) (failed []string, err error) {
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing artifact prefix %q: %w", prefix, err)
	}

	for _, key := range keys {
		rel := strings.TrimPrefix(key, prefix)
		if rel == "" {
			continue
		}
		localPath := filepath.Join(localDir, filepath.FromSlash(rel))

		data, err := store.Get(ctx, key)
		if err != nil {
			logger.Error("Failed to download object", "key", key, "error", err)
			failed = append(failed, key)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return failed, fmt.Errorf("creating %s: %w", filepath.Dir(localPath), err)
		}
		if err := os.WriteFile(localPath, data, 0o644); err != nil {
			return failed, fmt.Errorf("writing %s: %w", localPath, err)
		}
		logger.Info("Downloaded object", "key", key, "path", localPath)
	}

	return failed, nil
}

// UploadDir uploads every regular file under localDir to the given
// prefix, removing any existing objects under that prefix first so the
// upload fully replaces the previous artifact.
func UploadDir(ctx context.Context, store ObjectStore, localDir, prefix string) error {
	existing, err := store.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("listing prefix %q: %w", prefix, err)
	}
	for _, key := range existing {
		if err := store.Remove(ctx, key); err != nil {
			return err
		}
	}

	return filepath.WalkDir(localDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return store.Put(ctx, prefix+filepath.ToSlash(rel), data)
	})
}
