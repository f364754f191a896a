// Package files provides file system discovery for the survey cache
// directory. Presence of a tabular export there is what decides between the
// local and remote acquisition branches; selection is deterministic.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Export file extensions recognized in the cache directory.
var exportExtensions = []string{".csv", ".xlsx"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExportFiles finds all tabular export files (.csv, .xlsx) in the
// specified directory, sorted by name so the first match is stable across
// runs. A missing directory is reported as an error; the caller decides
// whether that means "cache miss" or a real failure.
func (d *Discovery) FindExportFiles(dir string) ([]FileInfo, error) {
	// If dir is already absolute, use it directly
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !isExportFile(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Lexical order keeps the cache-hit selection deterministic
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// isExportFile reports whether the name carries a recognized export extension.
func isExportFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exportExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
