package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/blogloom/internal/utils"
	"github.com/KaramelBytes/blogloom/internal/view"
	"github.com/spf13/cobra"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Write the blog as static HTML files",
	Long: `Render the home page, the about page and every listed post into --out:

  index.html
  about/index.html
  posts/<file>/index.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildOut == "" {
			return fmt.Errorf("--out is required")
		}
		s := openSite()
		c, err := view.NewController(s, viewOptions())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		write := func(rel string) error {
			var buf bytes.Buffer
			if err := c.Render(ctx, &buf); err != nil {
				return fmt.Errorf("%s: %w", rel, err)
			}
			return utils.SafeWriteFile(filepath.Join(buildOut, rel), buf.Bytes())
		}

		if err := write("index.html"); err != nil {
			return err
		}
		if err := c.Navigate("about"); err != nil {
			return err
		}
		if err := write(filepath.Join("about", "index.html")); err != nil {
			return err
		}

		sums, skips, err := s.Summaries(ctx)
		if err != nil {
			return err
		}
		for _, sk := range skips {
			warnf("skipped %q: %s", sk.File, sk.Reason)
		}
		n := 0
		for _, p := range sums {
			if err := c.OpenPost(ctx, p.File); err != nil {
				warnf("post %s: %v", p.File, err)
				continue
			}
			if err := write(filepath.Join("posts", filepath.FromSlash(p.File), "index.html")); err != nil {
				return err
			}
			n++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Built %d post(s) into %s\n", n, buildOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory")
}
