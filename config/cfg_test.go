package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Generator.Indent != 2 {
		t.Errorf("Default indent = %d, want 2", cfg.Generator.Indent)
	}
	if cfg.Generator.ScopedClassNames {
		t.Error("Scoped class names must be off by default")
	}
	if cfg.Generator.ProjectStyleSetPath != "" {
		t.Errorf("Default project style set = %q, want empty", cfg.Generator.ProjectStyleSetPath)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	styles := filepath.Join(tmpDir, "styles.json")
	if err := os.WriteFile(styles, []byte(`{"styleSetDefinitions": {}}`), 0644); err != nil {
		t.Fatalf("Failed to write style set: %v", err)
	}

	configContent := `version: 1
generator:
  project_style_set: ` + styles + `
  scoped_class_names: true
  indent: 4
logging:
  console:
    level: debug
  file:
    level: none
reporting:
  destination: ` + filepath.Join(tmpDir, "report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if !cfg.Generator.ScopedClassNames {
		t.Error("Expected ScopedClassNames to be true")
	}
	if cfg.Generator.Indent != 4 {
		t.Errorf("Indent = %d, want 4", cfg.Generator.Indent)
	}
	if cfg.Generator.ProjectStyleSetPath != styles {
		t.Errorf("ProjectStyleSetPath = %q, want %q", cfg.Generator.ProjectStyleSetPath, styles)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("version: 1\ngenerator:\n  framework: react\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown configuration field")
	}
}

func TestLoadConfiguration_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"indent too large", "version: 1\ngenerator:\n  indent: 20\n"},
		{"bad console level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing configuration file")
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "scoped_class_names") {
		t.Error("Default configuration must document scoped_class_names")
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	dumped, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	var back Config
	if err := yaml.Unmarshal(dumped, &back); err != nil {
		t.Fatalf("Dumped configuration is not valid YAML: %v", err)
	}
	if back.Generator.Indent != cfg.Generator.Indent || back.Version != cfg.Version {
		t.Errorf("Dumped configuration differs: %+v vs %+v", back.Generator, cfg.Generator)
	}
}
