package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/longmap/internal/benchfmt"
)

var errRegressions = errors.New("significant performance regressions detected")

func newCompareCommand(a *app) *cobra.Command {
	var configPath, out string

	cmd := &cobra.Command{
		Use:   "compare <base_json_file> <current_json_file>",
		Short: "Compare two benchmark summaries and report regressions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := benchfmt.LoadConfig(a.fs, configPath)
			if err != nil {
				return err
			}
			if out != "" {
				cfg.Output = out
			}

			base, err := benchfmt.LoadSummary(a.fs, args[0])
			if err != nil {
				return errors.Wrap(err, "base")
			}
			current, err := benchfmt.LoadSummary(a.fs, args[1])
			if err != nil {
				return errors.Wrap(err, "current")
			}

			comparison := benchfmt.Compare(base, current, cfg)
			if err := benchfmt.WriteReport(a.out, comparison); err != nil {
				return errors.Wrap(err, "write report")
			}
			if err := benchfmt.SaveComparison(a.fs, cfg.Output, comparison); err != nil {
				return err
			}

			a.logger.Info("compared benchmarks",
				zap.String("output", cfg.Output),
				zap.Int("total", comparison.TotalBenchmarks),
				zap.Int("improved", comparison.ImprovedBenchmarks),
				zap.Int("regressions", comparison.RegressionBenchmarks))

			if comparison.SignificantRegressions > 0 {
				return errors.Wrapf(errRegressions, "%d benchmarks", comparison.SignificantRegressions)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "JSONC comparison config")
	cmd.Flags().StringVarP(&out, "out", "o", "", "comparison JSON path (overrides the config)")
	return cmd
}
