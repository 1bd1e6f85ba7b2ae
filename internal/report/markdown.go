package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mdmend/internal/mdscan"
)

// Summary captures high-level run details for the report writers.
type Summary struct {
	RootPath   string
	StartedAt  time.Time
	FinishedAt time.Time
	Totals     mdscan.Summary
	JSONPath   string
}

// WriteMarkdown writes a GitHub-flavored Markdown report to path. If path is
// empty, it derives a safe filename from s.RootPath.
func WriteMarkdown(path string, results []mdscan.FileAnalysis, s Summary) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = safeBaseName(s.RootPath) + ".md"
	}

	var buf bytes.Buffer
	buf.WriteString("## Markdown Link Report\n\n")
	buf.WriteString(fmt.Sprintf("- **Root**: %s\n", escapeMD(s.RootPath)))
	buf.WriteString(fmt.Sprintf("- **Started**: %s\n", s.StartedAt.Format("2006-01-02 15:04:05 MST")))
	buf.WriteString(fmt.Sprintf("- **Finished**: %s\n", s.FinishedAt.Format("2006-01-02 15:04:05 MST")))
	buf.WriteString(fmt.Sprintf("- **Files**: %d  •  **Links**: %d  •  **Issues**: %d\n",
		s.Totals.TotalFiles, s.Totals.TotalLinks, s.Totals.TotalIssues))
	buf.WriteString(fmt.Sprintf("- **Broken**: %d  •  **Mismatched text**: %d  •  **Fixes applied**: %d\n",
		s.Totals.BrokenLinks, s.Totals.MismatchedText, s.Totals.FixesApplied))
	if s.JSONPath != "" {
		buf.WriteString(fmt.Sprintf("- **JSON**: %s\n", escapeMD(filepath.Base(s.JSONPath))))
	}
	buf.WriteString("\n")

	buf.WriteString("### Issues by file\n\n")
	withIssues := 0
	for _, a := range results {
		if len(a.Issues) == 0 {
			continue
		}
		withIssues++
		rel := relToRoot(s.RootPath, a.FilePath)
		buf.WriteString(fmt.Sprintf("- `%s` — %d issue(s), %d link(s)\n", escapeMD(rel), len(a.Issues), a.TotalLinks))
		buf.WriteString("  <details><summary>details</summary>\n\n")
		for _, issue := range a.Issues {
			buf.WriteString(fmt.Sprintf("  - L%d **%s**: %s\n", issue.LineNumber, issue.Kind, escapeMD(issue.Description)))
			if issue.SuggestedFix != "" {
				buf.WriteString(fmt.Sprintf("    - suggested: `%s`\n", escapeMD(issue.SuggestedFix)))
			}
		}
		buf.WriteString("\n  </details>\n\n")
	}
	if withIssues == 0 {
		buf.WriteString("No issues found.\n")
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func escapeMD(s string) string {
	// Basic HTML escape to be safe in GitHub Markdown cells
	return html.EscapeString(s)
}

// safeBaseName turns a root path into a filesystem-safe report basename.
func safeBaseName(rootPath string) string {
	base := filepath.Base(rootPath)
	if strings.TrimSpace(base) == "" || base == "." || base == string(filepath.Separator) {
		base = "results"
	}
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func relToRoot(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
