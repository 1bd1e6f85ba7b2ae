package mdscan

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		IncludePatterns: []string{"**/*.md"},
		ExcludePatterns: []string{"**/.backup_md_*", "**/node_modules"},
		LinkPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`),
			regexp.MustCompile(`\[See details in ([^]]+\.md)\]\(([^)]+)\)`),
			regexp.MustCompile(`\[See project details in ([^]]+\.md)\]\(([^)]+)\)`),
		},
		SimilarityThreshold: 0.6,
		MaxBackupFiles:      500,
		FixBrokenLinks:      true,
		FixMismatchedText:   true,
	}
}

func TestAnalyzeFile_BrokenLinkWithSuggestion(t *testing.T) {
	root := t.TempDir()
	// The source filename scores far below threshold against "b.md", so the
	// fuzzy matcher lands on c.md.
	src := writeFile(t, root, "zzzz-random-name.md", "[See details in b.md](b.md)\n")
	writeFile(t, root, "c.md", "# C\n")

	a := AnalyzeFile(src, root, testConfig())

	// The generic pattern and the "See details in" pattern both match the
	// same line; overlapping patterns double-count by contract.
	assert.Equal(t, 2, a.TotalLinks)
	assert.Equal(t, 2, a.BrokenLinks)
	require.Len(t, a.Issues, 2)
	for _, issue := range a.Issues {
		assert.Equal(t, KindBrokenLink, issue.Kind)
		assert.Equal(t, src, issue.FilePath)
		assert.Equal(t, 1, issue.LineNumber)
		assert.Equal(t, "c.md", issue.SuggestedFix)
	}
}

func TestAnalyzeFile_MismatchedText(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "a.md", "[wrong_name.md](right_name.md)\n")
	writeFile(t, root, "right_name.md", "# R\n")

	a := AnalyzeFile(src, root, testConfig())

	assert.Equal(t, 1, a.TotalLinks)
	assert.Equal(t, 0, a.BrokenLinks)
	assert.Equal(t, 1, a.MismatchedText)
	require.Len(t, a.Issues, 1)
	assert.Equal(t, KindMismatchedText, a.Issues[0].Kind)
	assert.Equal(t, "right_name.md", a.Issues[0].SuggestedFix)
}

func TestAnalyzeFile_SeeDetailsMismatch(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "index.md", "[See details in old_name.md](actual_name.md)\n")
	writeFile(t, root, "actual_name.md", "# A\n")

	a := AnalyzeFile(src, root, testConfig())

	// Generic pattern captures the whole prefixed text; the dedicated
	// pattern captures only the filename. Each produces its own phrasing.
	require.Len(t, a.Issues, 2)
	var fixes []string
	for _, issue := range a.Issues {
		assert.Equal(t, KindMismatchedText, issue.Kind)
		fixes = append(fixes, issue.SuggestedFix)
	}
	assert.ElementsMatch(t, []string{"See details in actual_name.md", "actual_name.md"}, fixes)
}

func TestAnalyzeFile_ExternalLinksCountedNotProbed(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "a.md", "[Google](https://google.com)\n[anchor](#section)\n")

	a := AnalyzeFile(src, root, testConfig())

	assert.Equal(t, 2, a.TotalLinks)
	assert.Empty(t, a.Issues)
}

func TestAnalyzeFile_FencedCodeBlockSkipped(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "a.md", "# Title\n\n```\n[x](missing.md)\n```\n")

	a := AnalyzeFile(src, root, testConfig())

	assert.Equal(t, 0, a.TotalLinks)
	assert.Empty(t, a.Issues)
	assert.Equal(t, 1, a.HeadingCount)
}

func TestAnalyzeFile_InlineCodeSkipped(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "a.md", "Call `[foo](bar)` here\n")

	a := AnalyzeFile(src, root, testConfig())

	assert.Equal(t, 0, a.TotalLinks)
	assert.Empty(t, a.Issues)
}

func TestAnalyzeFile_DocumentStats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.png", "")
	src := writeFile(t, root, "a.md", "# One\n## Two\nword word word\n![img](a.png)\n")

	a := AnalyzeFile(src, root, testConfig())

	assert.Equal(t, 8, a.WordCount)
	assert.Equal(t, 2, a.HeadingCount)
	assert.Equal(t, 1, a.ImageCount)
	assert.Equal(t, 1, a.TotalLinks)
	assert.Empty(t, a.Issues)
}

func TestAnalyzeFile_ReadFailure(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "missing.md")

	a := AnalyzeFile(missing, root, testConfig())

	assert.Equal(t, missing, a.FilePath)
	assert.Zero(t, a.TotalLinks)
	assert.Empty(t, a.Issues)
	assert.Zero(t, a.WordCount)
}

func TestFindMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "x")
	writeFile(t, root, "docs/b.md", "x")
	writeFile(t, root, "node_modules/x.md", "x")
	writeFile(t, root, ".backup_md_20240101_000000/a.md", "x")
	writeFile(t, root, "c.txt", "x")

	files, err := FindMarkdownFiles(root, testConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "docs", "b.md"),
	}, files)
}

func TestFindMarkdownFiles_RespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "x")
	writeFile(t, root, "docs/b.md", "x")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("docs/\n"), 0o644))

	cfg := testConfig()
	cfg.RespectGitignore = true
	files, err := FindMarkdownFiles(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.md")}, files)
}

func TestSummarize(t *testing.T) {
	results := []FileAnalysis{
		{TotalLinks: 3, BrokenLinks: 1, Issues: []LinkIssue{{}, {}}},
		{TotalLinks: 2, MismatchedText: 1, Issues: []LinkIssue{{}}},
	}
	s := Summarize(results)
	assert.Equal(t, 2, s.TotalFiles)
	assert.Equal(t, 5, s.TotalLinks)
	assert.Equal(t, 3, s.TotalIssues)
	assert.Equal(t, 1, s.BrokenLinks)
	assert.Equal(t, 1, s.MismatchedText)
}
