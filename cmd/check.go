package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mdmend/internal/mdscan"
	"mdmend/internal/report"
)

func init() {
	var (
		jsonOut      string
		htmlOut      string
		mdOut        string
		failOnIssues bool
	)

	checkCmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Analyze markdown links without changing anything",
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
			if shouldDebug() {
				fmt.Printf("::debug:: Root: %s\n", root)
				fmt.Printf("::debug:: Files: %d\n", len(files))
			}

			startedAt := time.Now()
			results := mdscan.Scan(context.Background(), root, files, scanCfg, func(a mdscan.FileAnalysis) {
				if shouldDebug() {
					fmt.Printf("::debug:: Analyzed %s links=%d issues=%d\n", a.FilePath, a.TotalLinks, len(a.Issues))
				}
			})
			summary := mdscan.Summarize(results)

			s := report.Summary{
				RootPath:   root,
				StartedAt:  startedAt,
				FinishedAt: time.Now(),
				Totals:     summary,
			}
			if jsonOut != "" {
				p, werr := report.WriteJSON(jsonOut, results, s)
				if werr != nil {
					return werr
				}
				s.JSONPath = p
			}
			if htmlOut != "" {
				if _, werr := report.WriteHTML(htmlOut, results, s); werr != nil {
					return werr
				}
			}
			if mdOut != "" {
				if _, werr := report.WriteMarkdown(mdOut, results, s); werr != nil {
					return werr
				}
			}

			fmt.Printf("Analyzed %d files: %d links, %d issues (%d broken, %d mismatched)\n",
				summary.TotalFiles, summary.TotalLinks, summary.TotalIssues,
				summary.BrokenLinks, summary.MismatchedText)
			if failOnIssues && summary.TotalIssues > 0 {
				return fmt.Errorf("%d link issues found", summary.TotalIssues)
			}
			return nil
		},
	}

	checkCmd.Flags().StringVar(&jsonOut, "json-out", "", "path to write the JSON report")
	checkCmd.Flags().StringVar(&htmlOut, "html-out", "", "path to write the HTML report")
	checkCmd.Flags().StringVar(&mdOut, "md-out", "", "path to write the Markdown report")
	checkCmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "exit non-zero if any issues are found")

	rootCmd.AddCommand(checkCmd)
}
