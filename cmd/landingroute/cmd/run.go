package cmd

import (
	"github.com/mfulz/landingroute/internal/batch"
	"github.com/spf13/cobra"
)

var dryRun bool

// RunCmd resolves every dataset row and writes the outputs.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve all dataset rows and write the dataset and route list",
	Long: `Builds the term index, resolves a landing path for every dataset row,
replaces the route column with the path or error code and writes the list of
successful routes.

Examples:
  landingroute run --dataset 20251112_131417.csv
  landingroute run -c landingroute.yaml --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		sum, err := batch.Run(FS, cfg, batch.Options{DryRun: dryRun})
		if err != nil {
			return err
		}
		return renderSummary(cmd.OutOrStdout(), sum)
	},
}

func init() {
	f := RunCmd.Flags()
	f.String("dataset", "", "Input CSV dataset")
	f.String("output", "", "Output CSV (default: overwrite the input)")
	f.String("routes", "", "Route list output file")
	f.String("report", "", "Optional YAML run report")
	f.BoolVar(&dryRun, "dry-run", false, "Resolve and summarize without writing files")

	bind(f, "dataset.path", "dataset")
	bind(f, "dataset.output", "output")
	bind(f, "output.routes_file", "routes")
	bind(f, "output.report_file", "report")
}
