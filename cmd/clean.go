package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mdmend/internal/backup"
)

func init() {
	var yes bool

	cleanCmd := &cobra.Command{
		Use:   "clean [path]",
		Short: "Remove stale backup directories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}

			dirs := backup.Find(root)
			if len(dirs) == 0 {
				fmt.Println("No backup directories found.")
				return nil
			}

			fmt.Printf("Found %d backup directories:\n", len(dirs))
			for i, d := range dirs {
				fmt.Printf("  %d. %s (%d files)\n", i+1, d.Path, d.FileCount)
			}

			if !yes {
				fmt.Print("Remove these directories? (y/N): ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					fmt.Println("Cleanup cancelled.")
					return nil
				}
			}

			removed := 0
			for _, d := range dirs {
				if rerr := backup.Remove(d); rerr != nil {
					fmt.Fprintf(os.Stderr, "warning: %v\n", rerr)
					continue
				}
				removed++
			}
			fmt.Printf("Cleanup complete: %d/%d directories removed\n", removed, len(dirs))
			return nil
		},
	}

	cleanCmd.Flags().BoolVarP(&yes, "yes", "y", false, "remove without prompting")

	rootCmd.AddCommand(cleanCmd)
}
