package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deliveryeta/internal/modules/dataset"
)

var (
	genSamples int
	genSeed    int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic delivery corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("samples") {
			cfg.Dataset.Samples = genSamples
		}
		if cmd.Flags().Changed("seed") {
			cfg.Dataset.Seed = genSeed
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		st, err := openStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.close()

		svc := dataset.NewService(dataset.NewGenerator(catalog, cfg.Tariff, cfg.Dataset.Seed), st.data, logger)
		sum, err := svc.Generate(cmd.Context(), cfg.Dataset.Samples)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d observations (mean %.2f km, %.2f min, range %.2f-%.2f min)\n",
			sum.Samples, sum.MeanDistanceKm, sum.MeanMinutes, sum.MinMinutes, sum.MaxMinutes)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&genSamples, "samples", "n", dataset.DefaultSamples, "number of observations")
	generateCmd.Flags().Int64Var(&genSeed, "seed", dataset.DefaultSeed, "generator seed")
}
