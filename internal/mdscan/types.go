package mdscan

import "regexp"

// IssueKind classifies a single link problem.
type IssueKind string

const (
	KindBrokenLink     IssueKind = "broken_link"
	KindMismatchedText IssueKind = "mismatched_text"
	KindInvalidFormat  IssueKind = "invalid_format"
)

// LinkIssue describes one problem found in a markdown file. Immutable once
// created; the Fix Applier and the report writers only read it.
type LinkIssue struct {
	FilePath     string    `json:"file_path"`
	LineNumber   int       `json:"line_number"`
	Kind         IssueKind `json:"issue_type"`
	OriginalText string    `json:"original_text"`
	OriginalLink string    `json:"original_link"`
	SuggestedFix string    `json:"suggested_fix,omitempty"`
	Description  string    `json:"description"`
}

// FileAnalysis holds the per-file result of a scan. TotalLinks counts every
// accepted link including external ones, which never produce issues.
type FileAnalysis struct {
	FilePath       string      `json:"file_path"`
	TotalLinks     int         `json:"total_links"`
	BrokenLinks    int         `json:"broken_links"`
	MismatchedText int         `json:"mismatched_text"`
	InvalidFormat  int         `json:"invalid_format"`
	Issues         []LinkIssue `json:"issues"`
	WordCount      int         `json:"word_count"`
	HeadingCount   int         `json:"heading_count"`
	ImageCount     int         `json:"image_count"`
}

// Summary aggregates scan results across all files.
type Summary struct {
	TotalFiles     int `json:"total_files"`
	TotalLinks     int `json:"total_links"`
	TotalIssues    int `json:"total_issues"`
	BrokenLinks    int `json:"broken_links"`
	MismatchedText int `json:"mismatched_text"`
	FixesApplied   int `json:"fixes_applied"`
}

// Config is the immutable scan configuration, passed down from the caller.
// LinkPatterns are tried in order; overlapping patterns may report the same
// logical link more than once.
type Config struct {
	IncludePatterns     []string
	ExcludePatterns     []string
	LinkPatterns        []*regexp.Regexp
	SimilarityThreshold float64
	MaxBackupFiles      int
	FixBrokenLinks      bool
	FixMismatchedText   bool
	RespectGitignore    bool
}

// Summarize folds per-file analyses into run totals. FixesApplied is owned
// by the orchestrating caller and left at zero here.
func Summarize(results []FileAnalysis) Summary {
	var s Summary
	s.TotalFiles = len(results)
	for _, a := range results {
		s.TotalLinks += a.TotalLinks
		s.TotalIssues += len(a.Issues)
		s.BrokenLinks += a.BrokenLinks
		s.MismatchedText += a.MismatchedText
	}
	return s
}
