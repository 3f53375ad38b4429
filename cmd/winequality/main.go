package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oenolab/winequality/internal/runner"
	"github.com/oenolab/winequality/internal/shared/config"
	"github.com/oenolab/winequality/internal/shared/logging"
	"github.com/oenolab/winequality/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		doTrain    bool
		doPredict  bool
	)

	cmd := &cobra.Command{
		Use:   "winequality",
		Short: "Train and apply a wine quality classification model",
		Long: `winequality pulls labeled wine datasets from object storage, searches
over classifier configurations with cross-validated grid search, persists the
best fitted pipeline, and scores new data with a previously persisted model.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

			store, err := storage.NewMinioStore(cfg.Storage)
			if err != nil {
				return err
			}

			err = runner.New(cfg, store, logger).Run(cmd.Context(), doTrain, doPredict)
			if errors.Is(err, runner.ErrDatasetUnavailable) {
				// recoverable tier: already logged, dependent steps were
				// skipped, exit status unchanged
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().BoolVar(&doTrain, "train", false, "train, select and persist the best model")
	cmd.Flags().BoolVar(&doPredict, "predict", false, "load the persisted model and score the test dataset")

	return cmd
}
