package mdscan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

var numericPrefixRegex = regexp.MustCompile(`^(\d+)_(.+)\.md$`)

// SplitNumericPrefix parses names like "03_setup.md" into ("03", "setup").
// Names without a numeric prefix yield ("", name-without-extension).
func SplitNumericPrefix(filename string) (prefix, base string) {
	if m := numericPrefixRegex.FindStringSubmatch(filename); m != nil {
		return m[1], m[2]
	}
	return "", strings.TrimSuffix(filename, ".md")
}

// Similarity returns a case-insensitive normalized edit-distance ratio in [0,1].
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), nil)
}

// FindBestMatch picks the most likely intended file for expectedFilename
// among the .md files of candidateDir. A unique shared numeric prefix wins
// outright; otherwise the highest similarity score at or above threshold
// wins, with ties keeping the first candidate in directory order.
// readme.md is never a candidate.
func FindBestMatch(expectedFilename, candidateDir string, threshold float64) (string, bool) {
	entries, err := os.ReadDir(candidateDir)
	if err != nil {
		return "", false
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".md") || strings.EqualFold(name, "readme.md") {
			continue
		}
		candidates = append(candidates, name)
	}

	if prefix, _ := SplitNumericPrefix(expectedFilename); prefix != "" {
		var samePrefix []string
		for _, name := range candidates {
			if p, _ := SplitNumericPrefix(name); p == prefix {
				samePrefix = append(samePrefix, name)
			}
		}
		if len(samePrefix) == 1 {
			return filepath.Join(candidateDir, samePrefix[0]), true
		}
	}

	var best string
	var bestScore float64
	for _, name := range candidates {
		score := Similarity(expectedFilename, name)
		if score > bestScore && score >= threshold {
			bestScore = score
			best = name
		}
	}
	if best == "" {
		return "", false
	}
	return filepath.Join(candidateDir, best), true
}

// FilenameVariations returns mechanical respellings of a .md filename in a
// fixed order: hyphen/underscore swaps, lowercase, uppercase, and
// title-cased forms. The caller tries them against the filesystem in order.
func FilenameVariations(filename string) []string {
	base := strings.TrimSuffix(filename, ".md")
	var variations []string

	if strings.Contains(base, "-") {
		variations = append(variations, strings.ReplaceAll(base, "-", "_")+".md")
	}
	if strings.Contains(base, "_") {
		variations = append(variations, strings.ReplaceAll(base, "_", "-")+".md")
	}

	variations = append(variations,
		strings.ToLower(base)+".md",
		strings.ToUpper(base)+".md",
		strings.ReplaceAll(titleWords(base), " ", "_")+".md",
		strings.ReplaceAll(titleWords(base), " ", "-")+".md",
	)
	return variations
}

// titleWords uppercases the first letter of every alphabetic run and
// lowercases the rest, leaving non-letters in place.
func titleWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}
