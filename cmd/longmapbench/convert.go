package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theflywheel/longmap/internal/benchfmt"
)

func newConvertCommand(a *app) *cobra.Command {
	var commit, branch, out, repo string

	cmd := &cobra.Command{
		Use:   "convert <benchmark_output_file>",
		Short: "Parse go test -bench output into a JSON summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			data, err := afero.ReadFile(a.fs, input)
			if err != nil {
				return errors.Wrap(err, "read benchmark output")
			}

			summary := benchfmt.Parse(string(data))

			gitCommit, gitBranch := benchfmt.GitInfo(a.fs, repo)
			summary.CommitID = firstNonEmpty(commit, gitCommit)
			summary.Branch = firstNonEmpty(branch, gitBranch)

			if out == "" {
				out = strings.TrimSuffix(input, ".txt") + ".json"
			}
			if err := benchfmt.SaveSummary(a.fs, out, summary); err != nil {
				return err
			}

			a.logger.Info("converted benchmark output",
				zap.String("input", input),
				zap.String("output", out),
				zap.Int("results", len(summary.Results)),
				zap.String("commit", summary.CommitID))
			return nil
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "commit ID to record (default: read from git)")
	cmd.Flags().StringVar(&branch, "branch", "", "branch name to record (default: read from git)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: input with .json extension)")
	cmd.Flags().StringVar(&repo, "repo", ".", "repository root used to look up git info")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
