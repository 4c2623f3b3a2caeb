package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/KaramelBytes/blogloom/internal/frontmatter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Show a post's header fields and body",
	Long:  `Split a post file ("-" for stdin) into its header block, printed as YAML, and its body.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		doc, diags := frontmatter.Split(raw)
		for _, d := range diags {
			if debug || d.Kind != frontmatter.NoFrontMatter {
				warnf("%s: %s", args[0], d)
			}
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "---")
		if len(doc.Header) > 0 {
			b, err := yaml.Marshal(map[string]string(doc.Header))
			if err != nil {
				return fmt.Errorf("marshal header: %w", err)
			}
			if _, err := out.Write(b); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, "---")
		_, err = io.WriteString(out, doc.Body)
		return err
	},
}

// readInput reads a local file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(b), nil
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
