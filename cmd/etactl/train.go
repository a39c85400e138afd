package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deliveryeta/internal/modules/training"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit linear and random forest models and persist the better one",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.close()

		svc := training.NewService(st.data, st.models, training.ParamsFromConfig(cfg.Training), logger)
		report, err := svc.Train(cmd.Context())
		if err != nil {
			if training.IsMissingCorpus(err) {
				return fmt.Errorf("%w (run `etactl generate` first)", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "trained on %d rows, evaluated on %d\n", report.TrainRows, report.TestRows)
		for _, c := range report.Candidates {
			fmt.Fprintf(out, "  %-18s MAE %.2f  RMSE %.2f  R2 %.4f\n", c.Type, c.Metrics.MAE, c.Metrics.RMSE, c.Metrics.R2)
		}
		fmt.Fprintf(out, "selected %s\n", report.Selected.Type)
		return nil
	},
}
