package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/quarry-dev/quarry/internal/template/model"
)

func writeAppTestBundle(t *testing.T, configYAML string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, model.BundleConfigFile), []byte(configYAML), 0644); err != nil {
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

const appTestConfig = `
name: app-test
version: 1.0.0
vars:
  name:
    type: string
  models:
    type: list
    default: []
`

func TestGenerateEndToEnd(t *testing.T) {
	bundleDir := writeAppTestBundle(t, appTestConfig, map[string]string{
		"README.md": "# {{titleCase name}}\n",
		"components/{{#models}}{{{.}}}{{/models}}/model.dart": "class {{pascalCase models}} {}\n",
	})
	outputDir := t.TempDir()

	result, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  bundleDir,
		OutputDir:  outputDir,
		VarFlags:   []string{"name=my_shop", "models=user,order"},
		OnConflict: "overwrite",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Files) != 3 {
		t.Fatalf("files = %d, want 3", len(result.Files))
	}

	readme, err := os.ReadFile(filepath.Join(outputDir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(readme) != "# My Shop\n" {
		t.Errorf("README = %q", readme)
	}

	user, err := os.ReadFile(filepath.Join(outputDir, "components", "user", "model.dart"))
	if err != nil {
		t.Fatal(err)
	}
	if string(user) != "class User {}\n" {
		t.Errorf("user model = %q", user)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "components", "order", "model.dart")); err != nil {
		t.Errorf("order model missing: %v", err)
	}
}

func TestGenerateDryRunTouchesNothing(t *testing.T) {
	bundleDir := writeAppTestBundle(t, appTestConfig, map[string]string{
		"README.md": "# {{name}}\n",
	})
	outputDir := t.TempDir()

	result, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  bundleDir,
		OutputDir:  outputDir,
		VarFlags:   []string{"name=x"},
		OnConflict: "prompt",
		DryRun:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.DryRun || len(result.Files) != 1 {
		t.Errorf("result = %+v", result)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d entries", len(entries))
	}
}

func TestGenerateInvalidConflictPolicy(t *testing.T) {
	_, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  t.TempDir(),
		OnConflict: "merge",
	})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != ValidationFailed {
		t.Errorf("err = %v, want ValidationFailed", err)
	}
}

func TestGenerateBundleLoadFailure(t *testing.T) {
	_, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  filepath.Join(t.TempDir(), "missing"),
		OnConflict: "prompt",
	})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != BundleLoadFailed {
		t.Errorf("err = %v, want BundleLoadFailed", err)
	}
}

func TestGeneratePreGenHookOverridesVars(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	config := `
name: hook-test
version: 1.0.0
vars:
  name:
    type: string
hooks:
  pre_gen: sh -c 'echo "@quarry-vars:{\"name\":\"patched\"}"'
`
	bundleDir := writeAppTestBundle(t, config, map[string]string{
		"out.txt": "{{name}}",
	})
	outputDir := t.TempDir()

	_, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  bundleDir,
		OutputDir:  outputDir,
		VarFlags:   []string{"name=original"},
		OnConflict: "overwrite",
	})
	if err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join(outputDir, "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "patched" {
		t.Errorf("content = %q, want patched", content)
	}
}

func TestGeneratePostGenHookFailureReported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	config := `
name: hook-test
version: 1.0.0
vars:
  name:
    type: string
hooks:
  post_gen: sh -c 'exit 1'
`
	bundleDir := writeAppTestBundle(t, config, map[string]string{
		"out.txt": "{{name}}",
	})

	_, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  bundleDir,
		OutputDir:  t.TempDir(),
		VarFlags:   []string{"name=x"},
		OnConflict: "overwrite",
	})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != HookFailed {
		t.Errorf("err = %v, want HookFailed", err)
	}
}

func TestGenerateSkipHooks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	config := `
name: hook-test
version: 1.0.0
vars:
  name:
    type: string
hooks:
  post_gen: sh -c 'exit 1'
`
	bundleDir := writeAppTestBundle(t, config, map[string]string{
		"out.txt": "{{name}}",
	})

	_, err := Generate(context.Background(), GenerateOptions{
		BundleDir:  bundleDir,
		OutputDir:  t.TempDir(),
		VarFlags:   []string{"name=x"},
		OnConflict: "overwrite",
		SkipHooks:  true,
	})
	if err != nil {
		t.Errorf("err = %v, want hooks skipped", err)
	}
}
