package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"uidlc/generate"
)

var componentExts = []string{".json", ".yaml", ".yml"}

func isComponentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range componentExts {
		if ext == e {
			return true
		}
	}
	return false
}

// determineOutputDir keeps source directory structure under destination. src
// is path relative to the processed source.
func determineOutputDir(src, dst string) string {
	return filepath.Join(dst, filepath.Dir(src))
}

// writeFiles writes all generated files into dir. Existing files are
// checked first so the set is either written completely or not at all.
func writeFiles(dir string, files []generate.GeneratedFile, overwrite bool, log *zap.Logger) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		name := filepath.Join(dir, filepath.FromSlash(f.Name))
		if _, err := os.Stat(name); err == nil {
			if !overwrite {
				return nil, fmt.Errorf("output file already exists: %s", name)
			}
			log.Warn("Overwriting existing file", zap.String("file", name))
		} else if !os.IsNotExist(err) {
			return nil, err
		}
		paths = append(paths, name)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}
	for i, f := range files {
		if err := os.WriteFile(paths[i], []byte(f.Content), 0644); err != nil {
			return nil, fmt.Errorf("unable to write %s file: %w", f.Kind, err)
		}
		log.Debug("File written", zap.String("file", paths[i]), zap.Stringer("kind", f.Kind), zap.Int("bytes", len(f.Content)))
	}
	return paths, nil
}
