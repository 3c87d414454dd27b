package compile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"uidlc/css"
	"uidlc/uidl"
)

// LoadProjectStyleSet reads project style set from JSON, YAML or plain CSS
// file. For CSS every top-level class rule becomes definition named after
// the class.
func LoadProjectStyleSet(path string, log *zap.Logger) (*uidl.ProjectStyleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read project style set: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".css" {
		set, err := uidl.DecodeProjectStyleSet(data)
		if err != nil {
			return nil, fmt.Errorf("unable to decode project style set (%s): %w", path, err)
		}
		log.Debug("Project style set loaded", zap.String("file", path), zap.Int("definitions", len(set.Definitions)))
		return set, nil
	}

	sheet := css.NewParser(log).Parse(data, path)
	set := css.ProjectStyleSet(sheet, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), "")
	for _, w := range sheet.Warnings {
		log.Warn("Project stylesheet", zap.String("file", path), zap.String("warning", w))
	}
	if len(set.Definitions) == 0 {
		return nil, fmt.Errorf("no usable class rules found in project stylesheet (%s)", path)
	}
	log.Debug("Project style set loaded from stylesheet", zap.String("file", path), zap.Int("definitions", len(set.Definitions)))
	return set, nil
}
