package mdscan

import "context"

// Scan analyzes files strictly sequentially and invokes onFile after each
// analysis (the TUI feeds on it). The context is only consulted between
// files; a file analysis in flight always runs to completion.
func Scan(ctx context.Context, rootPath string, files []string, cfg Config, onFile func(FileAnalysis)) []FileAnalysis {
	results := make([]FileAnalysis, 0, len(files))
	for _, f := range files {
		select {
		case <-ctx.Done():
			return results
		default:
		}
		analysis := AnalyzeFile(f, rootPath, cfg)
		results = append(results, analysis)
		if onFile != nil {
			onFile(analysis)
		}
	}
	return results
}
