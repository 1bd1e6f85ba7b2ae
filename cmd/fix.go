package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mdmend/internal/backup"
	"mdmend/internal/mdscan"
	"mdmend/internal/report"
)

func init() {
	var (
		dryRun    bool
		noBackup  bool
		noReports bool
		jsonOut   string
		htmlOut   string
		mdOut     string
	)

	fixCmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Analyze markdown links and rewrite the fixable ones",
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

			files, err := mdscan.FindMarkdownFiles(root, scanCfg)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No markdown files found.")
				return nil
			}
			fmt.Printf("Found %d markdown files under %s\n", len(files), root)

			if !dryRun && !noBackup {
				dir, n, berr := backup.Create(root, files, scanCfg.MaxBackupFiles)
				if berr != nil {
					return fmt.Errorf("backup failed: %w", berr)
				}
				fmt.Printf("Backup created: %s (%d files)\n", dir, n)
			}

			startedAt := time.Now()
			results := mdscan.Scan(context.Background(), root, files, scanCfg, nil)
			summary := mdscan.Summarize(results)

			if summary.TotalIssues > 0 {
				for _, a := range results {
					if len(a.Issues) == 0 {
						continue
					}
					fixes := mdscan.ApplyFixes(a, scanCfg, dryRun)
					if fixes > 0 {
						summary.FixesApplied += fixes
						verb := "Fixed"
						if dryRun {
							verb = "Would fix"
						}
						fmt.Printf("  %s %d link(s) in %s\n", verb, fixes, a.FilePath)
					}
				}
			}

			if !noReports {
				s := report.Summary{
					RootPath:   root,
					StartedAt:  startedAt,
					FinishedAt: time.Now(),
					Totals:     summary,
				}
				jsonPath, werr := report.WriteJSON(jsonOut, results, s)
				if werr != nil {
					return werr
				}
				s.JSONPath = jsonPath
				htmlPath, werr := report.WriteHTML(htmlOut, results, s)
				if werr != nil {
					return werr
				}
				if mdOut != "" {
					if _, werr := report.WriteMarkdown(mdOut, results, s); werr != nil {
						return werr
					}
				}
				fmt.Printf("Reports: %s, %s\n", jsonPath, htmlPath)
			}

			if dryRun {
				fmt.Printf("Dry run: %d issues found, %d fixable\n", summary.TotalIssues, summary.FixesApplied)
			} else {
				fmt.Printf("Applied %d fixes across %d files (%d issues found)\n",
					summary.FixesApplied, summary.TotalFiles, summary.TotalIssues)
			}
			return nil
		},
	}

	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute fixes without touching any file")
	fixCmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip the pre-fix backup copy")
	fixCmd.Flags().BoolVar(&noReports, "no-reports", false, "skip report generation")
	fixCmd.Flags().StringVar(&jsonOut, "json-out", "", "path for the JSON report (default: derived from root)")
	fixCmd.Flags().StringVar(&htmlOut, "html-out", "", "path for the HTML report (default: derived from root)")
	fixCmd.Flags().StringVar(&mdOut, "md-out", "", "path for the Markdown report (not written unless set)")

	rootCmd.AddCommand(fixCmd)
}
