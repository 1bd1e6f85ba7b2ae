package mdscan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

var headingRegex = regexp.MustCompile(`(?m)^#+\s`)
var imageRegex = regexp.MustCompile(`!\[.*?\]\(.*?\)`)

// FindMarkdownFiles walks the tree rooted at rootPath and returns the files
// matching the include globs (doublestar ** supported) that are not excluded.
// Respects .gitignore and .git/info/exclude when cfg.RespectGitignore is set.
// The result is sorted so runs are deterministic.
func FindMarkdownFiles(rootPath string, cfg Config) ([]string, error) {
	if strings.TrimSpace(rootPath) == "" {
		rootPath = "."
	}
	cleanRoot := filepath.Clean(rootPath)

	var ign *ignore.GitIgnore
	if cfg.RespectGitignore {
		ign = loadGitIgnore(cleanRoot)
	}

	matchesAny := func(patterns []string, rel string) bool {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if ok, _ := doublestar.PathMatch(p, rel); ok {
				return true
			}
		}
		return false
	}

	var files []string
	walkFn := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, rerr := filepath.Rel(cleanRoot, path)
		if rerr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if filepath.Base(path) == ".git" {
				return filepath.SkipDir
			}
			if rel != "." && matchesAny(cfg.ExcludePatterns, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}
		if matchesAny(cfg.ExcludePatterns, rel) {
			return nil
		}
		if len(cfg.IncludePatterns) > 0 && !matchesAny(cfg.IncludePatterns, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	}

	if err := filepath.WalkDir(cleanRoot, walkFn); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeFile scans a single markdown file for link issues and document
// statistics. It never fails: a read error yields a zero-valued analysis and
// a warning on stderr, and the run continues with remaining files.
func AnalyzeFile(filePath, rootPath string, cfg Config) FileAnalysis {
	analysis := FileAnalysis{FilePath: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: reading %s: %v\n", filePath, err)
		return analysis
	}
	content := string(data)
	lines := strings.Split(content, "\n")

	for _, pattern := range cfg.LinkPatterns {
		inCodeBlock := false
		for i, line := range lines {
			lineNum := i + 1

			// Fence lines toggle the code-block state and are never scanned
			// themselves.
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inCodeBlock = !inCodeBlock
				continue
			}
			if inCodeBlock {
				continue
			}

			for _, m := range pattern.FindAllStringSubmatch(line, -1) {
				var linkText, linkURL string
				if len(m) > 1 {
					linkText = m[1]
				}
				if len(m) > 2 {
					linkURL = m[2]
				} else {
					linkURL = linkText
				}

				if !IsGenuineLink(linkText, linkURL, line) {
					continue
				}
				analysis.TotalLinks++

				target, local := ResolveLinkPath(filePath, linkURL, rootPath)
				if !local {
					// External link or anchor: counted, never probed.
					continue
				}

				if _, serr := os.Stat(target); serr != nil {
					analysis.BrokenLinks++
					issue := LinkIssue{
						FilePath:     filePath,
						LineNumber:   lineNum,
						Kind:         KindBrokenLink,
						OriginalText: linkText,
						OriginalLink: linkURL,
						Description:  fmt.Sprintf("Link target does not exist: %s", linkURL),
					}
					if fix, ok := SuggestFix(filePath, linkURL, cfg.SimilarityThreshold); ok {
						issue.SuggestedFix = fix
					}
					analysis.Issues = append(analysis.Issues, issue)
					continue
				}

				if !strings.HasSuffix(linkText, ".md") {
					continue
				}
				actual := filepath.Base(target)

				if strings.HasPrefix(linkText, "See details in ") || strings.HasPrefix(linkText, "See project details in ") {
					extracted := linkText
					if idx := strings.LastIndex(linkText, " in "); idx >= 0 {
						extracted = linkText[idx+len(" in "):]
					}
					if extracted != actual {
						analysis.MismatchedText++
						fix := "See details in " + actual
						if strings.HasPrefix(linkText, "See project details in ") {
							fix = "See project details in " + actual
						}
						analysis.Issues = append(analysis.Issues, LinkIssue{
							FilePath:     filePath,
							LineNumber:   lineNum,
							Kind:         KindMismatchedText,
							OriginalText: linkText,
							OriginalLink: linkURL,
							SuggestedFix: fix,
							Description:  fmt.Sprintf("Link text filename %q doesn't match actual filename %q", extracted, actual),
						})
					}
				} else if linkText != actual {
					analysis.MismatchedText++
					analysis.Issues = append(analysis.Issues, LinkIssue{
						FilePath:     filePath,
						LineNumber:   lineNum,
						Kind:         KindMismatchedText,
						OriginalText: linkText,
						OriginalLink: linkURL,
						SuggestedFix: actual,
						Description:  fmt.Sprintf("Link text %q doesn't match filename %q", linkText, actual),
					})
				}
			}
		}
	}

	analysis.WordCount = len(strings.Fields(content))
	analysis.HeadingCount = len(headingRegex.FindAllString(content, -1))
	analysis.ImageCount = len(imageRegex.FindAllString(content, -1))
	return analysis
}

// SuggestFix proposes a replacement target for a broken link: the fuzzy best
// match within the link's directory, or failing that the first mechanical
// filename variation that exists on disk. The returned path is relative to
// the source file's directory, forward slashes.
func SuggestFix(sourceFile, linkURL string, threshold float64) (string, bool) {
	srcDir := filepath.Dir(sourceFile)
	linkPath := filepath.FromSlash(linkURL)
	targetDir := filepath.Join(srcDir, filepath.Dir(linkPath))
	expected := filepath.Base(linkPath)

	if st, err := os.Stat(targetDir); err != nil || !st.IsDir() {
		return "", false
	}

	if match, ok := FindBestMatch(expected, targetDir, threshold); ok {
		rel, err := filepath.Rel(srcDir, match)
		if err != nil {
			return "", false
		}
		return filepath.ToSlash(rel), true
	}

	for _, variation := range FilenameVariations(expected) {
		candidate := filepath.Join(targetDir, variation)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		rel, err := filepath.Rel(srcDir, candidate)
		if err != nil {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

func loadGitIgnore(root string) *ignore.GitIgnore {
	var lines []string
	if b, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		lines = append(lines, strings.Split(string(b), "\n")...)
	}
	if b, err := os.ReadFile(filepath.Join(root, ".git", "info", "exclude")); err == nil {
		lines = append(lines, strings.Split(string(b), "\n")...)
	}
	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}
