package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/KaramelBytes/blogloom/internal/markup"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the markup rules in the order they are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tRULE\tPATTERN\tREPLACEMENT")
		for i, r := range markup.Rules() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.Name, r.Pattern, r.Template)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
