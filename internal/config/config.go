package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Source is a posts directory or an http(s) base URL holding index.json
	// and the post files.
	Source    string `mapstructure:"source" yaml:"source"`
	IndexFile string `mapstructure:"index_file" yaml:"index_file"`
	AboutFile string `mapstructure:"about_file" yaml:"about_file"`
	SiteTitle string `mapstructure:"site_title" yaml:"site_title"`
	Addr      string `mapstructure:"addr" yaml:"addr"`

	// Post metadata presentation
	DateLayout       string `mapstructure:"date_layout" yaml:"date_layout"`
	EstimateReadTime bool   `mapstructure:"estimate_read_time" yaml:"estimate_read_time"`
	WordsPerMinute   int    `mapstructure:"words_per_minute" yaml:"words_per_minute"`
	ExcerptWords     int    `mapstructure:"excerpt_words" yaml:"excerpt_words"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".blogloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.blogloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("BLOGLOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source", "posts")
	v.SetDefault("index_file", "index.json")
	v.SetDefault("about_file", "about.md")
	v.SetDefault("site_title", "Blog")
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("date_layout", "January 2, 2006")
	v.SetDefault("estimate_read_time", false)
	v.SetDefault("words_per_minute", 200)
	v.SetDefault("excerpt_words", 0)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 20)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no command can work with.
func (c *Global) Validate() error {
	if c.WordsPerMinute < 0 {
		return fmt.Errorf("words_per_minute must not be negative")
	}
	if c.ExcerptWords < 0 {
		return fmt.Errorf("excerpt_words must not be negative")
	}
	if c.HTTPTimeoutSec < 0 || c.RetryMaxAttempts < 0 || c.RetryBaseDelayMs < 0 || c.RetryMaxDelayMs < 0 {
		return fmt.Errorf("http/retry settings must not be negative")
	}
	return nil
}
