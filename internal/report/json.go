package report

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"mdmend/internal/mdscan"
)

type jsonReport struct {
	Timestamp string                `json:"timestamp"`
	RootPath  string                `json:"root_path"`
	Summary   mdscan.Summary        `json:"summary"`
	Files     []mdscan.FileAnalysis `json:"files"`
}

// WriteJSON writes the machine-readable report: run summary plus every
// per-file analysis. An empty path derives a safe filename from s.RootPath.
func WriteJSON(path string, results []mdscan.FileAnalysis, s Summary) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = safeBaseName(s.RootPath) + ".json"
	}

	out := jsonReport{
		Timestamp: s.FinishedAt.Format(time.RFC3339),
		RootPath:  s.RootPath,
		Summary:   s.Totals,
		Files:     results,
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return path, nil
}
