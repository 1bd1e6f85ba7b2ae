package mdscan

import (
	"regexp"
	"strings"
)

var linkPrefixes = []string{"http://", "https://", "ftp://", "mailto:", "#", "./", "../", "/"}

var docExtensions = []string{".md", ".html", ".pdf", ".txt", ".doc", ".docx", ".png", ".jpg", ".gif"}

// Shapes that show up when a regex match is really source code, not a link:
// type declarations, function calls, scope resolution, reference/pointer sigils.
var codeShapeRegexes = []*regexp.Regexp{
	regexp.MustCompile(`^int\s+\w+`),
	regexp.MustCompile(`^\w+\s*\(`),
	regexp.MustCompile(`^\w+::\w+`),
	regexp.MustCompile(`^[a-zA-Z_]\w*\s*[&*]`),
}

// IsGenuineLink decides whether a [text](url) match inside line is a real
// markdown link rather than inline code or a code snippet that happens to
// contain brackets and parentheses. Rules are ordered; the first decisive
// one wins.
func IsGenuineLink(linkText, linkURL, line string) bool {
	// An odd number of backticks before the match means we are inside
	// inline code.
	if strings.Contains(line, "`") {
		raw := "[" + linkText + "](" + linkURL + ")"
		if pos := strings.Index(line, raw); pos >= 0 {
			if strings.Count(line[:pos], "`")%2 == 1 {
				return false
			}
		}
	}

	for _, prefix := range linkPrefixes {
		if strings.HasPrefix(linkURL, prefix) {
			return true
		}
	}

	for _, ext := range docExtensions {
		if strings.HasSuffix(linkURL, ext) {
			return true
		}
	}

	if strings.ContainsAny(linkURL, `/\`) {
		return true
	}

	// Spaces plus commas or several tokens look like function-call arguments.
	if strings.Contains(linkURL, " ") && (strings.Contains(linkURL, ",") || len(strings.Fields(linkURL)) > 2) {
		return false
	}

	for _, re := range codeShapeRegexes {
		if re.MatchString(linkURL) {
			return false
		}
	}

	return true
}
