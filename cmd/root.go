package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mdmend/internal/config"
	"mdmend/internal/mdscan"
)

var rootCmd = &cobra.Command{
	Use:   "mdmend",
	Short: "Markdown link analyzer and fixer",
	Long:  "mdmend scans a directory tree for markdown documents, detects broken or mismatched relative links, and optionally rewrites them using fuzzy filename matching.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	configPath    string
	thresholdFlag float64
	noGitignore   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to JSON configuration file")
	rootCmd.PersistentFlags().Float64Var(&thresholdFlag, "threshold", -1, "similarity threshold override in [0,1]")
	rootCmd.PersistentFlags().BoolVar(&noGitignore, "no-gitignore", false, "do not respect .gitignore while scanning")
}

// loadScanConfig merges the config file over defaults and applies the flag
// overrides shared by all commands.
func loadScanConfig() (*config.Config, mdscan.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, mdscan.Config{}, err
	}
	if thresholdFlag >= 0 {
		cfg.SimilarityThreshold = thresholdFlag
	}
	if noGitignore {
		cfg.RespectGitignore = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, mdscan.Config{}, err
	}
	scanCfg, err := cfg.Compile()
	if err != nil {
		return nil, mdscan.Config{}, err
	}
	return cfg, scanCfg, nil
}

// resolveRoot turns the optional positional argument into a clean root path.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		root = args[0]
	}
	root = filepath.Clean(root)
	st, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %s", root)
	}
	if !st.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return root, nil
}

func shouldDebug() bool {
	if os.Getenv("MDMEND_DEBUG") == "1" {
		return true
	}
	if strings.EqualFold(os.Getenv("ACTIONS_STEP_DEBUG"), "true") {
		return true
	}
	return os.Getenv("RUNNER_DEBUG") == "1"
}
