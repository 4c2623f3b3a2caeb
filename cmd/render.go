package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/blogloom/internal/view"
	"github.com/spf13/cobra"
)

var renderPage bool

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a post's body to HTML",
	Long:  `Render a local post file ("-" for stdin). With --page the full post page is written instead of the body only.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		name := filepath.Base(args[0])
		if args[0] == "-" {
			name = "stdin.md"
		}
		s := openSite()
		p, err := s.Build(name, raw)
		if err != nil {
			return err
		}
		if !renderPage {
			_, err = io.WriteString(cmd.OutOrStdout(), p.HTML+"\n")
			return err
		}
		c, err := view.NewController(s, viewOptions())
		if err != nil {
			return err
		}
		c.Show(p)
		if err := c.Render(cmd.Context(), cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderPage, "page", false, "write a complete HTML page")
}
