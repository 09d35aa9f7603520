package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quarry-dev/quarry/internal/template/bundle"
)

func TestAvailableScaffoldTypes(t *testing.T) {
	types, err := AvailableScaffoldTypes()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, typ := range types {
		if typ == "default" {
			found = true
		}
	}
	if !found {
		t.Errorf("types = %v, want to include default", types)
	}
}

func TestNewBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-bundle")

	result, err := NewBundle(context.Background(), NewBundleOptions{
		Path: dir,
		Type: "default",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesCreated == 0 {
		t.Error("no files created")
	}

	// The scaffolded bundle must itself load cleanly.
	loaded, err := bundle.Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("scaffolded bundle does not load: %v", err)
	}
	if loaded.Config.Name == "" {
		t.Error("scaffolded bundle.yaml has no name")
	}
}

func TestNewBundleUnknownType(t *testing.T) {
	_, err := NewBundle(context.Background(), NewBundleOptions{
		Path: t.TempDir(),
		Type: "nope",
	})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != ValidationFailed {
		t.Errorf("err = %v, want ValidationFailed", err)
	}
}

func TestNewBundleRefusesNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewBundle(context.Background(), NewBundleOptions{Path: dir, Type: "default"})
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != ValidationFailed {
		t.Errorf("err = %v, want ValidationFailed", err)
	}

	// Force allows it.
	if _, err := NewBundle(context.Background(), NewBundleOptions{Path: dir, Type: "default", Force: true}); err != nil {
		t.Errorf("force: %v", err)
	}
}
