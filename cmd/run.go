package cmd

import (
	"github.com/spf13/cobra"

	"mdmend/internal/tui"
)

func init() {
	var (
		watch    bool
		fix      bool
		noBackup bool
		jsonOut  string
		htmlOut  string
		mdOut    string
	)

	runCmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Analyze markdown links interactively (TUI)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			_, scanCfg, err := loadScanConfig()
			if err != nil {
				return err
			}

			return tui.Run(tui.Options{
				RootPath: root,
				ScanCfg:  scanCfg,
				Fix:      fix,
				NoBackup: noBackup,
				Watch:    watch,
				JSONOut:  jsonOut,
				HTMLOut:  htmlOut,
				MDOut:    mdOut,
			})
		},
	}

	runCmd.Flags().BoolVar(&watch, "watch", false, "re-scan when files change")
	runCmd.Flags().BoolVar(&fix, "fix", false, "apply fixes after analysis")
	runCmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-fix backup copy")
	runCmd.Flags().StringVar(&jsonOut, "json-out", "", "path to write the JSON report")
	runCmd.Flags().StringVar(&htmlOut, "html-out", "", "path to write the HTML report")
	runCmd.Flags().StringVar(&mdOut, "md-out", "", "path to write the Markdown report")

	rootCmd.AddCommand(runCmd)
}
