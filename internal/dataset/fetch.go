package dataset

import (
	"context"

	"github.com/oenolab/winequality/internal/shared/logging"
	"github.com/oenolab/winequality/internal/storage"
)

// FetchFrame downloads the blob at key, parses it and applies the
// transform. A key with glob metacharacters ("datasets/**/*.csv") is
// resolved against the store first, and every matching object is
// parsed and concatenated into one frame. Any retrieval, parse or
// cast failure is logged with the key and surfaces as a nil frame;
// callers must nil-check before using the result.
func FetchFrame(ctx context.Context, store storage.ObjectStore, key string, transform Transform, logger logging.Logger) *Frame {
	keys := []string{key}
	if storage.IsPattern(key) {
		matched, err := storage.ListGlob(ctx, store, key)
		if err != nil {
			logger.Error("Failed to resolve dataset pattern", "pattern", key, "error", err)
			return nil
		}
		if len(matched) == 0 {
			logger.Error("No objects match dataset pattern", "pattern", key)
			return nil
		}
		keys = matched
		logger.Info("Resolved dataset pattern", "pattern", key, "objects", len(keys))
	}

	var raw *RawTable
	for _, k := range keys {
		data, err := store.Get(ctx, k)
		if err != nil {
			logger.Error("Failed to fetch dataset", "key", k, "error", err)
			return nil
		}
		part, err := ParseSemicolonCSV(string(data))
		if err != nil {
			logger.Error("Failed to parse dataset", "key", k, "error", err)
			return nil
		}
		if raw == nil {
			raw = part
			continue
		}
		if err := raw.Append(part); err != nil {
			logger.Error("Failed to merge dataset part", "key", k, "error", err)
			return nil
		}
	}

	frame, err := FrameFromRaw(raw)
	if err != nil {
		logger.Error("Failed to build frame", "key", key, "error", err)
		return nil
	}

	if transform != nil {
		frame, err = transform(frame)
		if err != nil {
			logger.Error("Failed to transform dataset", "key", key, "error", err)
			return nil
		}
	}

	logger.Info("Fetched dataset", "key", key, "rows", frame.Rows(), "columns", len(frame.ColumnNames()))
	return frame
}
