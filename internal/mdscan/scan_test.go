package mdscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_SequentialWithCallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "[Google](https://google.com)\n")
	writeFile(t, root, "b.md", "plain text\n")
	cfg := testConfig()

	files, err := FindMarkdownFiles(root, cfg)
	require.NoError(t, err)
	require.Len(t, files, 2)

	var seen []string
	results := Scan(context.Background(), root, files, cfg, func(a FileAnalysis) {
		seen = append(seen, a.FilePath)
	})

	require.Len(t, results, 2)
	assert.Equal(t, files, seen)
	assert.Equal(t, 1, results[0].TotalLinks)
	assert.Equal(t, 0, results[1].TotalLinks)
}

func TestScan_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "x\n")
	cfg := testConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Scan(ctx, root, []string{"a.md"}, cfg, nil)
	assert.Empty(t, results)
}
