package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	cfgpkg "github.com/KaramelBytes/blogloom/internal/config"
	"github.com/KaramelBytes/blogloom/internal/frontmatter"
	"github.com/KaramelBytes/blogloom/internal/site"
	"github.com/KaramelBytes/blogloom/internal/source"
	"github.com/KaramelBytes/blogloom/internal/utils"
	"github.com/KaramelBytes/blogloom/internal/view"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile    string
	debug      bool
	flagSource string
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

const defaultPostsDir = "posts"

var rootCmd = &cobra.Command{
	Use:   "blogloom",
	Short: "Blogloom: render a markdown blog from a posts directory or URL",
	Long: `Blogloom reads posts made of a "---" delimited metadata header and a lightweight
markup body, renders them to HTML, and serves or builds the resulting blog.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.blogloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print header diagnostics and skipped posts")
	rootCmd.PersistentFlags().StringVarP(&flagSource, "source", "s", "", "posts directory or http(s) base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max fetch attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("source") && flagSource != "" {
		cfg.Source = flagSource
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "⚠ Warning: "+format+"\n", args...)
}

// openSource resolves the configured posts location.
func openSource() source.Source {
	return source.Open(resolvePostsLocation(cfg.Source), source.Options{
		Timeout:   time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		RetryMax:  cfg.RetryMaxAttempts,
		BaseDelay: time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:  time.Duration(cfg.RetryMaxDelayMs) * time.Millisecond,
	})
}

// resolvePostsLocation returns loc unchanged unless it is the default
// relative "posts" directory and that has no index here; then the nearest
// posts directory above the working directory is used, if any.
func resolvePostsLocation(loc string) string {
	if loc == "" {
		loc = defaultPostsDir
	}
	if loc != defaultPostsDir {
		return loc
	}
	if _, err := os.Stat(filepath.Join(loc, utils.IndexFileName)); err == nil {
		return loc
	}
	found, err := utils.FindPostsDir("")
	if err != nil {
		return loc
	}
	if debug {
		fmt.Fprintf(os.Stderr, "• using posts directory %s\n", found)
	}
	return found
}

func siteOptions() site.Options {
	opts := site.Options{
		IndexFile: cfg.IndexFile,
		Meta: site.MetaOptions{
			EstimateReadTime: cfg.EstimateReadTime,
			WordsPerMinute:   cfg.WordsPerMinute,
			ExcerptWords:     cfg.ExcerptWords,
		},
		OnFetchError: func(file string, err error) {
			warnf("fetch %s: %v", file, err)
		},
	}
	if debug {
		opts.OnDiagnostic = func(file string, d frontmatter.Diagnostic) {
			fmt.Fprintf(os.Stderr, "• %s: %s\n", file, d)
		}
	}
	return opts
}

func openSite() *site.Site {
	return site.New(openSource(), siteOptions())
}

func viewOptions() view.Options {
	return view.Options{
		SiteTitle:  cfg.SiteTitle,
		DateLayout: cfg.DateLayout,
		AboutFile:  cfg.AboutFile,
	}
}
