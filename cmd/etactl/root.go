package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deliveryeta/internal/config"
	"deliveryeta/internal/infra"
)

var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "etactl",
	Short:         "Generate training data, train and query the delivery time model",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = infra.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
}
