package compile

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"uidlc/config"
	"uidlc/generate"
	"uidlc/state"
)

const mediaComponent = `{
  "name": "MyComponent",
  "node": {
    "type": "element",
    "content": {
      "elementType": "container",
      "style": { "width": "100px" },
      "referencedStyles": {
        "1234567890": {
          "id": "1234567890",
          "type": "style-map",
          "content": {
            "mapType": "inlined",
            "conditions": [ { "conditionType": "screen-size", "maxWidth": 991 } ],
            "styles": { "display": "none" }
          }
        }
      },
      "children": [ { "type": "static", "content": "Hello !!" } ]
    }
  }
}`

const projectComponent = `
name: Buttons
node:
  type: element
  content:
    elementType: button
    referencedStyles:
      "123456789":
        content:
          mapType: project-referenced
          referenceId: "987654321"
    children:
      - type: static
        content: Buy
`

const projectStyles = `{
  "styleSetDefinitions": {
    "987654321": { "id": "987654321", "name": "primaryButton", "content": { "background": "blue" } }
  },
  "fileName": "style",
  "path": ".."
}`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestProcess_NonExistentPath(t *testing.T) {
	ctx, env := setupTestEnv(t)

	err := process(ctx, filepath.Join(t.TempDir(), "missing.json"), t.TempDir(), env.Log)
	if err == nil {
		t.Fatal("expected error for non-existent path")
	}
	if !strings.Contains(err.Error(), "input source was not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	src := filepath.Join(t.TempDir(), "c.json")
	writeFile(t, src, mediaComponent)

	if err := process(ctx, src, t.TempDir(), env.Log); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnv(t)

	src := filepath.Join(t.TempDir(), "my.json")
	writeFile(t, src, mediaComponent)
	dst := t.TempDir()

	if err := process(ctx, src, dst, env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	for _, name := range []string{"my-component.html", "my-component.ts", "my-component.css"} {
		if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
	if css := readFile(t, filepath.Join(dst, "my-component.css")); !strings.Contains(css, "@media(max-width: 991px)") {
		t.Errorf("unexpected stylesheet:\n%s", css)
	}
}

func TestProcess_ExistingOutput(t *testing.T) {
	ctx, env := setupTestEnv(t)

	src := filepath.Join(t.TempDir(), "my.json")
	writeFile(t, src, mediaComponent)
	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "my-component.ts"), "keep")

	if err := process(ctx, src, dst, env.Log); err == nil {
		t.Fatal("expected error for existing output")
	}
	if _, err := os.Stat(filepath.Join(dst, "my-component.html")); !os.IsNotExist(err) {
		t.Error("no file must be written when output already exists")
	}
	if got := readFile(t, filepath.Join(dst, "my-component.ts")); got != "keep" {
		t.Errorf("existing file was modified: %q", got)
	}

	env.Overwrite = true
	if err := process(ctx, src, dst, env.Log); err != nil {
		t.Fatalf("process with overwrite: %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "my-component.ts")); got == "keep" {
		t.Error("existing file was not overwritten")
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "my.json"), mediaComponent)
	writeFile(t, filepath.Join(dir, "b", "buttons.yaml"), projectComponent)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a component")
	dst := t.TempDir()

	set, err := LoadProjectStyleSet(writeTemp(t, "styles.json", projectStyles), env.Log)
	if err != nil {
		t.Fatalf("load project styles: %v", err)
	}
	env.ProjectStyleSet = set

	if err := process(ctx, dir, dst, env.Log); err != nil {
		t.Fatalf("process: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "a", "my-component.css")); err != nil {
		t.Errorf("expected stylesheet for inline styled component: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "b", "buttons.css")); !os.IsNotExist(err) {
		t.Error("stylesheet must not be written for project styled component")
	}
	html := readFile(t, filepath.Join(dst, "b", "buttons.html"))
	if !strings.Contains(html, `class="primaryButton"`) {
		t.Errorf("unexpected markup:\n%s", html)
	}
	ts := readFile(t, filepath.Join(dst, "b", "buttons.ts"))
	if strings.Contains(ts, ".css") {
		t.Errorf("logic must not reference any stylesheet:\n%s", ts)
	}
}

func TestProcess_DirectoryWithFailure(t *testing.T) {
	ctx, env := setupTestEnv(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.json"), mediaComponent)
	// project reference without project style set
	writeFile(t, filepath.Join(dir, "bad.yaml"), projectComponent)
	dst := t.TempDir()

	err := process(ctx, dir, dst, env.Log)
	if err == nil {
		t.Fatal("expected error when one of the components fails")
	}
	if _, err := os.Stat(filepath.Join(dst, "my-component.html")); err != nil {
		t.Errorf("good component must still be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "buttons.html")); !os.IsNotExist(err) {
		t.Error("failed component must not produce any files")
	}
}

func writeBundle(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create %s in bundle: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write %s in bundle: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close bundle: %v", err)
	}
}

func TestProcess_Bundle(t *testing.T) {
	ctx, env := setupTestEnv(t)

	bundle := filepath.Join(t.TempDir(), "components.zip")
	writeBundle(t, bundle, map[string]string{
		"ui/media/my.json":     mediaComponent,
		"ui/shop/buttons.yaml": projectComponent,
		"README.md":            "not a component",
	})
	set, err := LoadProjectStyleSet(writeTemp(t, "styles.json", projectStyles), env.Log)
	if err != nil {
		t.Fatalf("load project styles: %v", err)
	}
	env.ProjectStyleSet = set

	t.Run("whole bundle", func(t *testing.T) {
		dst := t.TempDir()
		if err := process(ctx, bundle, dst, env.Log); err != nil {
			t.Fatalf("process: %v", err)
		}
		for _, name := range []string{
			filepath.Join("ui", "media", "my-component.css"),
			filepath.Join("ui", "shop", "buttons.html"),
		} {
			if _, err := os.Stat(filepath.Join(dst, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
	})

	t.Run("path inside bundle", func(t *testing.T) {
		dst := t.TempDir()
		if err := process(ctx, filepath.Join(bundle, "ui", "shop"), dst, env.Log); err != nil {
			t.Fatalf("process: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dst, "buttons.html")); err != nil {
			t.Errorf("expected buttons.html relative to selected path: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dst, "my-component.html")); !os.IsNotExist(err) {
			t.Error("component outside of selected path must not be processed")
		}
	})
}

func TestProcess_UnrecognizedInput(t *testing.T) {
	ctx, env := setupTestEnv(t)

	src := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, src, "plain text")

	err := process(ctx, src, t.TempDir(), env.Log)
	if err == nil || !strings.Contains(err.Error(), "not recognized") {
		t.Errorf("expected not recognized error, got %v", err)
	}
}

func TestProcessComponent_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)

	rptPath := filepath.Join(t.TempDir(), "report.zip")
	env.Cfg.Reporting.Destination = rptPath
	rpt, err := env.Cfg.Reporting.Prepare()
	if err != nil {
		t.Fatalf("prepare report: %v", err)
	}
	env.Rpt = rpt

	gen := generate.New(env.Log, generatorOptions(env.Cfg))
	if err := processComponent(ctx, gen, []byte(mediaComponent), "my.json", t.TempDir(), env.Log); err != nil {
		t.Fatalf("processComponent: %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("close report: %v", err)
	}
	if fi, err := os.Stat(rptPath); err != nil || fi.Size() == 0 {
		t.Errorf("expected non empty report: %v", err)
	}
}

func TestWriteProjectStylesheet(t *testing.T) {
	_, env := setupTestEnv(t)

	set, err := LoadProjectStyleSet(writeTemp(t, "styles.json", projectStyles), env.Log)
	if err != nil {
		t.Fatalf("load project styles: %v", err)
	}
	env.ProjectStyleSet = set
	dst := t.TempDir()

	if err := writeProjectStylesheet(dst, env, env.Log); err != nil {
		t.Fatalf("writeProjectStylesheet: %v", err)
	}
	css := readFile(t, filepath.Join(dst, "style.css"))
	if !strings.Contains(css, ".primaryButton {\n  background: blue;\n}") {
		t.Errorf("unexpected project stylesheet:\n%s", css)
	}
}

func TestIsComponentFile(t *testing.T) {
	tests := map[string]bool{
		"a.json":     true,
		"a.YAML":     true,
		"dir/b.yml":  true,
		"a.css":      false,
		"a":          false,
		"a.json.bak": false,
	}
	for path, want := range tests {
		if got := isComponentFile(path); got != want {
			t.Errorf("isComponentFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDetermineOutputDir(t *testing.T) {
	dst := filepath.Join("out", "dir")
	if got := determineOutputDir("my.json", dst); got != dst {
		t.Errorf("got %q, want %q", got, dst)
	}
	want := filepath.Join(dst, "nested")
	if got := determineOutputDir(filepath.Join("nested", "my.json"), dst); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
