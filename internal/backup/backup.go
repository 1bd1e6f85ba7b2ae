package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Prefix names the backup directories this tool creates and later cleans up.
const Prefix = ".backup_md_"

// Create copies files into a timestamped backup directory under rootPath,
// preserving their layout relative to the root. At most maxFiles files are
// copied; per-file failures are skipped so one unreadable file cannot sink
// the backup. Returns the backup directory and the number of files copied.
func Create(rootPath string, files []string, maxFiles int) (string, int, error) {
	timestamp := time.Now().Format("20060102_150405")
	backupDir := filepath.Join(rootPath, Prefix+timestamp)

	copied := 0
	for _, f := range files {
		if maxFiles > 0 && copied >= maxFiles {
			fmt.Fprintf(os.Stderr, "warning: backup limited to %d files\n", maxFiles)
			break
		}
		rel, err := filepath.Rel(rootPath, f)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		dst := filepath.Join(backupDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipped %s: %v\n", f, err)
			continue
		}
		if err := copyFile(f, dst); err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipped %s: %v\n", f, err)
			continue
		}
		copied++
	}

	if copied == 0 {
		return "", 0, fmt.Errorf("no files backed up into %s", backupDir)
	}
	return backupDir, copied, nil
}

// Dir describes one backup directory found on disk.
type Dir struct {
	Path      string
	FileCount int
}

// Find locates backup directories in rootPath and its immediate
// subdirectories, with a file count per directory. Unreadable directories
// are skipped.
func Find(rootPath string) []Dir {
	searchDirs := []string{rootPath}
	if entries, err := os.ReadDir(rootPath); err == nil {
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".git") {
				searchDirs = append(searchDirs, filepath.Join(rootPath, e.Name()))
			}
		}
	}

	var found []Dir
	for _, dir := range searchDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || !strings.Contains(e.Name(), Prefix) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			found = append(found, Dir{Path: path, FileCount: countFiles(path)})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found
}

// Remove deletes a backup directory recursively.
func Remove(dir Dir) error {
	if err := os.RemoveAll(dir.Path); err != nil {
		return fmt.Errorf("removing %s: %w", dir.Path, err)
	}
	return nil
}

func countFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
