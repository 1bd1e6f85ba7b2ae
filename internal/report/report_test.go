package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdmend/internal/mdscan"
)

func sampleResults(root string) ([]mdscan.FileAnalysis, Summary) {
	results := []mdscan.FileAnalysis{
		{
			FilePath:    filepath.Join(root, "a.md"),
			TotalLinks:  2,
			BrokenLinks: 1,
			Issues: []mdscan.LinkIssue{{
				FilePath:     filepath.Join(root, "a.md"),
				LineNumber:   3,
				Kind:         mdscan.KindBrokenLink,
				OriginalText: "guide",
				OriginalLink: "missing.md",
				SuggestedFix: "existing.md",
				Description:  "Link target does not exist: missing.md",
			}},
			WordCount:    42,
			HeadingCount: 2,
		},
		{FilePath: filepath.Join(root, "b.md"), TotalLinks: 1, WordCount: 7},
	}
	s := Summary{
		RootPath:   root,
		StartedAt:  time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 23, 10, 0, 5, 0, time.UTC),
		Totals:     mdscan.Summarize(results),
	}
	return results, s
}

func TestWriteJSON(t *testing.T) {
	root := t.TempDir()
	results, s := sampleResults(root)
	out := filepath.Join(root, "report.json")

	path, err := WriteJSON(out, results, s)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		RootPath string                `json:"root_path"`
		Summary  mdscan.Summary        `json:"summary"`
		Files    []mdscan.FileAnalysis `json:"files"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, root, decoded.RootPath)
	assert.Equal(t, 2, decoded.Summary.TotalFiles)
	assert.Equal(t, 3, decoded.Summary.TotalLinks)
	require.Len(t, decoded.Files, 2)
	require.Len(t, decoded.Files[0].Issues, 1)
	assert.Equal(t, "existing.md", decoded.Files[0].Issues[0].SuggestedFix)
}

func TestWriteMarkdown(t *testing.T) {
	root := t.TempDir()
	results, s := sampleResults(root)
	out := filepath.Join(root, "report.md")

	path, err := WriteMarkdown(out, results, s)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(content)
	assert.Contains(t, md, "## Markdown Link Report")
	assert.Contains(t, md, "a.md")
	assert.Contains(t, md, "broken_link")
	assert.Contains(t, md, "existing.md")
}

func TestWriteMarkdown_DerivedFilename(t *testing.T) {
	root := t.TempDir()
	results, s := sampleResults(root)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	defer func() { _ = os.Chdir(cwd) }()

	path, err := WriteMarkdown("", results, s)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".md"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteHTML(t *testing.T) {
	root := t.TempDir()
	results, s := sampleResults(root)
	out := filepath.Join(root, "report.html")

	path, err := WriteHTML(out, results, s)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Markdown Link Report")
	assert.Contains(t, html, "a.md")
	assert.Contains(t, html, "existing.md")
	assert.Contains(t, html, "broken link")
}

func TestWriteHTML_NoIssues(t *testing.T) {
	root := t.TempDir()
	results := []mdscan.FileAnalysis{{FilePath: filepath.Join(root, "a.md"), TotalLinks: 1}}
	s := Summary{RootPath: root, FinishedAt: time.Now(), Totals: mdscan.Summarize(results)}
	out := filepath.Join(root, "report.html")

	path, err := WriteHTML(out, results, s)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "No issues found in any files.")
}
