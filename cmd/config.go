package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/blogloom/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Blogloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "source: %s\n", cfg.Source)
		fmt.Fprintf(out, "index_file: %s\n", cfg.IndexFile)
		if cfg.AboutFile != "" {
			fmt.Fprintf(out, "about_file: %s\n", cfg.AboutFile)
		}
		fmt.Fprintf(out, "site_title: %s\n", cfg.SiteTitle)
		fmt.Fprintf(out, "addr: %s\n", cfg.Addr)
		fmt.Fprintf(out, "date_layout: %s\n", cfg.DateLayout)
		fmt.Fprintf(out, "estimate_read_time: %t\n", cfg.EstimateReadTime)
		fmt.Fprintf(out, "words_per_minute: %d\n", cfg.WordsPerMinute)
		if cfg.ExcerptWords > 0 {
			fmt.Fprintf(out, "excerpt_words: %d\n", cfg.ExcerptWords)
		}
		fmt.Fprintf(out, "http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Fprintf(out, "retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "source":
			cfg.Source = val
		case "index_file":
			cfg.IndexFile = val
		case "about_file":
			cfg.AboutFile = val
		case "site_title":
			cfg.SiteTitle = val
		case "addr":
			cfg.Addr = val
		case "date_layout":
			cfg.DateLayout = val
		case "estimate_read_time":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for estimate_read_time: %w", err)
			}
			cfg.EstimateReadTime = b
		case "words_per_minute":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for words_per_minute: %v", val)
			}
			cfg.WordsPerMinute = i
		case "excerpt_words":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for excerpt_words: %v", val)
			}
			cfg.ExcerptWords = i
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "retry_max_attempts":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for retry_max_attempts: %v", val)
			}
			cfg.RetryMaxAttempts = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
