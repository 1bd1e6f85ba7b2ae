package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"**/*.md"}, cfg.IncludePatterns)
	assert.Len(t, cfg.LinkPatterns, 3)
	assert.Equal(t, 0.6, cfg.SimilarityThreshold)
	assert.Equal(t, 500, cfg.MaxBackupFiles)
	assert.True(t, cfg.FixBrokenLinks)
	assert.True(t, cfg.FixMismatchedText)
	assert.True(t, cfg.RespectGitignore)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdmend.json")
	content := `{
		"similarity_threshold": 0.8,
		"include_patterns": ["docs/**/*.md"],
		"fix_broken_links": false
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Supplied keys override defaults one level deep.
	assert.Equal(t, 0.8, cfg.SimilarityThreshold)
	assert.Equal(t, []string{"docs/**/*.md"}, cfg.IncludePatterns)
	assert.False(t, cfg.FixBrokenLinks)

	// Unspecified keys keep their defaults.
	assert.Len(t, cfg.LinkPatterns, 3)
	assert.True(t, cfg.FixMismatchedText)
	assert.Equal(t, 500, cfg.MaxBackupFiles)
}

func TestLoad_MissingFileDegradesToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.SimilarityThreshold)
	assert.Len(t, cfg.LinkPatterns, 3)
}

func TestCompile(t *testing.T) {
	cfg := Default()
	scanCfg, err := cfg.Compile()
	require.NoError(t, err)
	assert.Len(t, scanCfg.LinkPatterns, 3)
	assert.Equal(t, cfg.SimilarityThreshold, scanCfg.SimilarityThreshold)
	assert.Equal(t, cfg.IncludePatterns, scanCfg.IncludePatterns)
}

func TestCompile_InvalidPattern(t *testing.T) {
	cfg := Default()
	cfg.LinkPatterns = []string{`\[(unclosed`}
	_, err := cfg.Compile()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.SimilarityThreshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxBackupFiles = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LinkPatterns = nil
	assert.Error(t, cfg.Validate())
}
