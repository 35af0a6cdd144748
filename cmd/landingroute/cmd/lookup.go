package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUnresolved = errors.New("route not resolved")

// LookupCmd resolves a single term/entity pair.
var LookupCmd = &cobra.Command{
	Use:   "lookup <atlas_term> <entidad>",
	Short: "Resolve the landing path of one term and entity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		idx, err := buildIndex(cfg)
		if err != nil {
			return err
		}

		res := newResolver(cfg, idx).Resolve(args[0], args[1])
		if !res.OK() {
			fmt.Fprintln(cmd.OutOrStdout(), ErrorStyle.Render(res.Cell()))
			return fmt.Errorf("%w: %s", errUnresolved, res.Err.Code)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		return nil
	},
}
