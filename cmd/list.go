package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the posts named in the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSite()
		sums, skips, err := s.Summaries(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(sums) == 0 {
			fmt.Fprintln(out, "(no posts)")
		}
		for _, p := range sums {
			line := fmt.Sprintf("- %s: %s", p.File, p.Title)
			if d := p.FormatDate(cfg.DateLayout); d != "" {
				line += " (" + d + ")"
			}
			fmt.Fprintln(out, line)
		}
		if debug {
			for _, sk := range skips {
				name := sk.File
				if name == "" {
					name = "(entry without file)"
				}
				warnf("skipped %s: %s", name, sk.Reason)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
