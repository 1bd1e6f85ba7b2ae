package report

import (
	"html/template"
	"os"
	"strings"

	"mdmend/internal/mdscan"
)

type htmlIssue struct {
	Label        string
	Class        string
	LineNumber   int
	Description  string
	OriginalText string
	OriginalLink string
	SuggestedFix string
}

type htmlFile struct {
	Path       string
	IssueCount int
	TotalLinks int
	WordCount  int
	Headings   int
	Images     int
	Issues     []htmlIssue
}

type htmlData struct {
	GeneratedAt  string
	RootPath     string
	Totals       mdscan.Summary
	IssueClass   string
	Files        []htmlFile
	FilesFlagged []htmlFile
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Markdown Link Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.6; }
        .header { background: #f4f4f4; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
        .summary { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 15px; margin-bottom: 30px; }
        .card { background: #fff; border: 1px solid #ddd; border-radius: 5px; padding: 15px; text-align: center; }
        .card h3 { margin: 0 0 10px 0; color: #333; }
        .card .number { font-size: 2em; font-weight: bold; }
        .card.error .number { color: #e74c3c; }
        .card.warning .number { color: #f39c12; }
        .card.success .number { color: #27ae60; }
        .card.info .number { color: #3498db; }
        .file-section { margin-bottom: 30px; border: 1px solid #ddd; border-radius: 5px; }
        .file-header { background: #f8f9fa; padding: 15px; border-bottom: 1px solid #ddd; }
        .file-header h3 { margin: 0; color: #333; }
        .file-stats { display: flex; gap: 20px; margin-top: 10px; }
        .file-stats span { background: #e9ecef; padding: 5px 10px; border-radius: 3px; font-size: 0.9em; }
        .issues-list { padding: 15px; }
        .issue { background: #fff; border-left: 4px solid #e74c3c; padding: 10px; margin-bottom: 10px; }
        .issue.warning { border-left-color: #f39c12; }
        .issue-type { font-weight: bold; text-transform: uppercase; font-size: 0.8em; }
        .issue-description { margin: 5px 0; }
        .issue-details { font-family: monospace; background: #f8f9fa; padding: 5px; border-radius: 3px; font-size: 0.9em; }
        .suggested-fix { color: #27ae60; font-weight: bold; }
        .no-issues { text-align: center; padding: 20px; color: #666; }
        .footer { margin-top: 40px; text-align: center; color: #666; font-size: 0.9em; }
        table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f2f2f2; font-weight: bold; }
        tr:hover { background-color: #f5f5f5; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Markdown Link Report</h1>
        <p>Generated on {{.GeneratedAt}}</p>
        <p>Root: <code>{{.RootPath}}</code></p>
    </div>

    <div class="summary">
        <div class="card info"><h3>Files Analyzed</h3><div class="number">{{.Totals.TotalFiles}}</div></div>
        <div class="card info"><h3>Total Links</h3><div class="number">{{.Totals.TotalLinks}}</div></div>
        <div class="card error"><h3>Broken Links</h3><div class="number">{{.Totals.BrokenLinks}}</div></div>
        <div class="card warning"><h3>Mismatched Text</h3><div class="number">{{.Totals.MismatchedText}}</div></div>
        <div class="card {{.IssueClass}}"><h3>Total Issues</h3><div class="number">{{.Totals.TotalIssues}}</div></div>
    </div>

    {{if .Files}}
    <h2>Files Overview</h2>
    <table>
        <thead>
            <tr><th>File</th><th>Links</th><th>Issues</th><th>Words</th><th>Headings</th><th>Images</th></tr>
        </thead>
        <tbody>
        {{range .Files}}
            <tr>
                <td><code>{{.Path}}</code></td>
                <td>{{.TotalLinks}}</td>
                <td>{{.IssueCount}}</td>
                <td>{{.WordCount}}</td>
                <td>{{.Headings}}</td>
                <td>{{.Images}}</td>
            </tr>
        {{end}}
        </tbody>
    </table>
    {{end}}

    <h2>Detailed Issues</h2>
    {{if not .FilesFlagged}}
    <div class="no-issues">No issues found in any files.</div>
    {{else}}
    {{range .FilesFlagged}}
    <div class="file-section">
        <div class="file-header">
            <h3>{{.Path}}</h3>
            <div class="file-stats">
                <span>Links: {{.TotalLinks}}</span>
                <span>Issues: {{.IssueCount}}</span>
                <span>Words: {{.WordCount}}</span>
            </div>
        </div>
        <div class="issues-list">
        {{range .Issues}}
            <div class="issue {{.Class}}">
                <div class="issue-type">{{.Label}}</div>
                <div class="issue-description">{{.Description}}</div>
                <div class="issue-details">
                    Line {{.LineNumber}}: <strong>{{.OriginalText}}</strong> &rarr; <code>{{.OriginalLink}}</code>
                    {{if .SuggestedFix}}<br>Suggested fix: <span class="suggested-fix">{{.SuggestedFix}}</span>{{end}}
                </div>
            </div>
        {{end}}
        </div>
    </div>
    {{end}}
    {{end}}

    <div class="footer"><p>Generated by mdmend | {{.GeneratedAt}}</p></div>
</body>
</html>
`))

// WriteHTML renders the analysis results as a standalone HTML document. An
// empty path derives a safe filename from s.RootPath.
func WriteHTML(path string, results []mdscan.FileAnalysis, s Summary) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = safeBaseName(s.RootPath) + ".html"
	}

	data := htmlData{
		GeneratedAt: s.FinishedAt.Format("2006-01-02 15:04:05"),
		RootPath:    s.RootPath,
		Totals:      s.Totals,
		IssueClass:  "success",
	}
	if s.Totals.TotalIssues > 0 {
		data.IssueClass = "error"
	}

	for _, a := range results {
		f := htmlFile{
			Path:       relToRoot(s.RootPath, a.FilePath),
			IssueCount: len(a.Issues),
			TotalLinks: a.TotalLinks,
			WordCount:  a.WordCount,
			Headings:   a.HeadingCount,
			Images:     a.ImageCount,
		}
		for _, issue := range a.Issues {
			class := ""
			if issue.Kind == mdscan.KindMismatchedText {
				class = "warning"
			}
			f.Issues = append(f.Issues, htmlIssue{
				Label:        strings.ReplaceAll(string(issue.Kind), "_", " "),
				Class:        class,
				LineNumber:   issue.LineNumber,
				Description:  issue.Description,
				OriginalText: issue.OriginalText,
				OriginalLink: issue.OriginalLink,
				SuggestedFix: issue.SuggestedFix,
			})
		}
		data.Files = append(data.Files, f)
		if f.IssueCount > 0 {
			data.FilesFlagged = append(data.FilesFlagged, f)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := htmlTemplate.Execute(f, data); err != nil {
		return "", err
	}
	return path, nil
}
