package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"

	"mdmend/internal/mdscan"
)

// Config holds the tool configuration, loaded once at startup and immutable
// during a run.
type Config struct {
	IncludePatterns     []string `mapstructure:"include_patterns"`
	ExcludePatterns     []string `mapstructure:"exclude_patterns"`
	LinkPatterns        []string `mapstructure:"link_patterns"`
	SimilarityThreshold float64  `mapstructure:"similarity_threshold"`
	MaxBackupFiles      int      `mapstructure:"max_backup_files"`
	FixBrokenLinks      bool     `mapstructure:"fix_broken_links"`
	FixMismatchedText   bool     `mapstructure:"fix_mismatched_text"`
	RespectGitignore    bool     `mapstructure:"respect_gitignore"`
}

// Load reads configuration from a JSON file merged over defaults. A missing
// or unreadable file is not fatal: the defaults stand in for anything the
// file does not supply. Keys from the file override defaults one level deep.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("mdmend")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("MDMEND")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			fmt.Fprintf(os.Stderr, "warning: could not load config %s: %v\n", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching any file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("include_patterns", []string{"**/*.md"})
	v.SetDefault("exclude_patterns", []string{
		"**/.backup_md_*",
		"**/.git",
		"**/.vscode",
		"**/node_modules",
		"**/vendor",
	})
	v.SetDefault("link_patterns", []string{
		`\[([^\]]*)\]\(([^)]+)\)`,
		`\[See details in ([^]]+\.md)\]\(([^)]+)\)`,
		`\[See project details in ([^]]+\.md)\]\(([^)]+)\)`,
	})
	v.SetDefault("similarity_threshold", 0.6)
	v.SetDefault("max_backup_files", 500)
	v.SetDefault("fix_broken_links", true)
	v.SetDefault("fix_mismatched_text", true)
	v.SetDefault("respect_gitignore", true)
}

// Compile translates the loaded configuration into the scan configuration,
// compiling the link patterns. An invalid pattern is a hard error: scanning
// with a silently dropped pattern would under-report.
func (c *Config) Compile() (mdscan.Config, error) {
	patterns := make([]*regexp.Regexp, 0, len(c.LinkPatterns))
	for _, p := range c.LinkPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return mdscan.Config{}, fmt.Errorf("invalid link pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return mdscan.Config{
		IncludePatterns:     c.IncludePatterns,
		ExcludePatterns:     c.ExcludePatterns,
		LinkPatterns:        patterns,
		SimilarityThreshold: c.SimilarityThreshold,
		MaxBackupFiles:      c.MaxBackupFiles,
		FixBrokenLinks:      c.FixBrokenLinks,
		FixMismatchedText:   c.FixMismatchedText,
		RespectGitignore:    c.RespectGitignore,
	}, nil
}

// Validate checks the loaded configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [0,1], got %v", c.SimilarityThreshold)
	}
	if c.MaxBackupFiles < 0 {
		return fmt.Errorf("max_backup_files must not be negative, got %d", c.MaxBackupFiles)
	}
	if len(c.LinkPatterns) == 0 {
		return fmt.Errorf("at least one link pattern is required")
	}
	return nil
}
