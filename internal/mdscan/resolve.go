package mdscan

import (
	"path/filepath"
	"strings"
)

var externalPrefixes = []string{"http://", "https://", "mailto:", "#"}

// ResolveLinkPath converts a raw link URL, relative to sourceFile, into a
// candidate filesystem path. The second return value is false for external
// links and anchors, which are not checkable on disk. The resolver is a pure
// path computation; existence probing is the caller's job.
func ResolveLinkPath(sourceFile, linkURL, rootPath string) (string, bool) {
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(linkURL, prefix) {
			return "", false
		}
	}

	if strings.HasPrefix(linkURL, "/") {
		return filepath.Join(rootPath, strings.TrimPrefix(linkURL, "/")), true
	}
	return filepath.Join(filepath.Dir(sourceFile), filepath.FromSlash(linkURL)), true
}
