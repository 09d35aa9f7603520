package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/quarry-dev/quarry/internal/config"
	"github.com/quarry-dev/quarry/internal/template/model"
)

const testBundleYAML = `
name: test-bundle
version: 1.0.0
vars:
  name:
    description: project name
`

func writeTestBundle(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, model.BundleConfigFile), []byte(testBundleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		full := filepath.Join(dir, model.BundleTemplateDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeTestBundle(t, map[string]string{
		"README.md":       "# {{name}}",
		"lib/main.dart":   "void main() {}",
		"{{~ header }}":   "// {{name}}",
		"sub/{{~ foot }}": "footer",
	})

	bundle, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	if bundle.Config.Name != "test-bundle" {
		t.Errorf("config name = %q", bundle.Config.Name)
	}
	if bundle.RootPath == "" || !filepath.IsAbs(bundle.RootPath) {
		t.Errorf("root path = %q, want absolute", bundle.RootPath)
	}

	// Partials are routed out of the renderable file list.
	if len(bundle.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(bundle.Files))
	}
	if len(bundle.Partials) != 2 {
		t.Fatalf("partials = %d, want 2", len(bundle.Partials))
	}
	if string(bundle.Partials["{{~ header }}"]) != "// {{name}}" {
		t.Errorf("header partial = %q", bundle.Partials["{{~ header }}"])
	}
	if string(bundle.Partials["sub/{{~ foot }}"]) != "footer" {
		t.Errorf("foot partial = %q", bundle.Partials["sub/{{~ foot }}"])
	}

	// Files come back sorted by path.
	if bundle.Files[0].Path != "README.md" || bundle.Files[1].Path != "lib/main.dart" {
		t.Errorf("file order = %q, %q", bundle.Files[0].Path, bundle.Files[1].Path)
	}
}

func TestLoadManyFiles(t *testing.T) {
	// More files than the read concurrency limit.
	files := make(map[string]string, 100)
	for i := 0; i < 100; i++ {
		files[fmt.Sprintf("src/file%03d.txt", i)] = fmt.Sprintf("content %d", i)
	}
	dir := writeTestBundle(t, files)

	bundle, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(bundle.Files) != 100 {
		t.Fatalf("files = %d, want 100", len(bundle.Files))
	}
	for i, f := range bundle.Files {
		want := fmt.Sprintf("src/file%03d.txt", i)
		if f.Path != want {
			t.Fatalf("file %d path = %q, want %q", i, f.Path, want)
		}
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"))

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("err = %v, want LoadError", err)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, model.BundleTemplateDir), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), dir)
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != config.ConfigNotFound {
		t.Errorf("err = %v, want ConfigNotFound", err)
	}
}

func TestLoadMissingTemplateDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, model.BundleConfigFile), []byte(testBundleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), dir)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("err = %v, want LoadError", err)
	}
}

func TestLoadCancelledContext(t *testing.T) {
	dir := writeTestBundle(t, map[string]string{"a.txt": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
