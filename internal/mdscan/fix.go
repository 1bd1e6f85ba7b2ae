package mdscan

import (
	"fmt"
	"os"
	"strings"
)

// ApplyFixes rewrites the links an analysis flagged, as literal substring
// replacements against the whole file content, in issue order. The file is
// written back only when content changed and dryRun is false. Re-running on
// already-fixed content applies zero fixes: once a fix lands, the original
// [text](link) substring no longer exists.
func ApplyFixes(analysis FileAnalysis, cfg Config, dryRun bool) int {
	if len(analysis.Issues) == 0 {
		return 0
	}

	data, err := os.ReadFile(analysis.FilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: reading %s: %v\n", analysis.FilePath, err)
		return 0
	}
	content := string(data)
	original := content

	fixes := 0
	for _, issue := range analysis.Issues {
		if issue.SuggestedFix == "" {
			continue
		}

		var oldLink, newLink string
		switch issue.Kind {
		case KindBrokenLink:
			if !cfg.FixBrokenLinks {
				continue
			}
			oldLink = "[" + issue.OriginalText + "](" + issue.OriginalLink + ")"
			newLink = "[" + issue.OriginalText + "](" + issue.SuggestedFix + ")"
		case KindMismatchedText:
			if !cfg.FixMismatchedText {
				continue
			}
			oldLink = "[" + issue.OriginalText + "](" + issue.OriginalLink + ")"
			newLink = "[" + issue.SuggestedFix + "](" + issue.OriginalLink + ")"
		default:
			continue
		}

		// An earlier fix in the same pass may have already rewritten this
		// substring; skip silently when it is gone.
		if !strings.Contains(content, oldLink) {
			continue
		}
		content = strings.ReplaceAll(content, oldLink, newLink)
		fixes++
	}

	if !dryRun && content != original {
		if err := os.WriteFile(analysis.FilePath, []byte(content), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: writing %s: %v\n", analysis.FilePath, err)
			return 0
		}
	}
	return fixes
}
