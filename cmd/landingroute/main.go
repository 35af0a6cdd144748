// Command landingroute resolves landing paths for every row of a CSV dataset
// from per-term JSON configuration files, rewrites the dataset's route column
// and writes the list of resolved routes.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mfulz/landingroute/cmd/landingroute/cmd"
	"github.com/mfulz/landingroute/internal/batch"
	"github.com/mfulz/landingroute/internal/config"
	"github.com/mfulz/landingroute/internal/logging"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "landingroute",
	Short:         "Resolve HDFS landing paths for dataset rows",
	Long:          `landingroute looks up each row's atlas_term configuration, substitutes the entity into its landing path and writes the updated dataset plus a plain route list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cmd.Viper, configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logging.Init(); err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		logging.Log.Debugf("[landingroute] Config: %+v", *cfg)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, batch.ErrOutputLocked) {
			fmt.Fprintln(os.Stderr, cmd.ErrorStyle.Render("The output file is open in another program. Close it and run again."))
		}
		logging.Log.Errorf("[landingroute] %v", err)
		_ = logging.Log.Sync()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to landingroute.yaml")
	cmd.RegisterSourceFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(cmd.RunCmd)
	rootCmd.AddCommand(cmd.LookupCmd)
	rootCmd.AddCommand(cmd.IndexCmd)
}
