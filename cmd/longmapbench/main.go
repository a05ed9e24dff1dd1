// Command longmapbench converts `go test -bench` output of the longmap
// benchmarks to JSON and compares two such JSON files.
//
//	go test -bench . -benchmem -v ./bench > bench.txt
//	longmapbench convert bench.txt
//	longmapbench compare benchmark_history/baseline.json bench.json
package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	fs     afero.Fs
	out    io.Writer
	logger *zap.Logger
}

func newRootCommand(a *app) *cobra.Command {
	var jsonLog bool

	root := &cobra.Command{
		Use:          "longmapbench",
		Short:        "Convert and compare longmap benchmark results",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			var err error
			if jsonLog {
				a.logger, err = zap.NewProduction()
			} else {
				a.logger, err = zap.NewDevelopment()
			}
			return errors.Wrap(err, "create logger")
		},
	}
	root.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "write logs as JSON")

	root.AddCommand(newConvertCommand(a), newCompareCommand(a))
	return root
}

func main() {
	a := &app{fs: afero.NewOsFs(), out: os.Stdout}
	err := newRootCommand(a).Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}
