package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	showTerms      bool
	showDuplicates bool
)

// IndexCmd reports what the term index contains.
var IndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the term configuration index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig()
		idx, err := buildIndex(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %d\n", TitleStyle.Render("Configuration files:"), idx.Len())

		if showTerms {
			for _, term := range idx.Terms() {
				p, _ := idx.Lookup(term)
				fmt.Fprintf(out, "  %s  %s\n", term, SubtitleStyle.Render(p))
			}
		}

		if showDuplicates {
			dups := idx.Duplicates()
			if len(dups) == 0 {
				fmt.Fprintln(out, SuccessStyle.Render("No duplicate terms"))
				return nil
			}
			fmt.Fprintln(out, WarningStyle.Render(fmt.Sprintf("Duplicate terms: %d", len(dups))))
			for _, d := range dups {
				fmt.Fprintf(out, "  %s\n    kept:     %s\n    shadowed: %s\n",
					d.Term, d.Kept, strings.Join(d.Shadowed, ", "))
			}
		}
		return nil
	},
}

func init() {
	f := IndexCmd.Flags()
	f.BoolVar(&showTerms, "terms", false, "List every indexed term and its file")
	f.BoolVar(&showDuplicates, "duplicates", false, "List terms found in more than one file")
}
