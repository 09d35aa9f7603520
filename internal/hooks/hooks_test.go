package hooks

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/quarry-dev/quarry/internal/template/render"
)

func skipWithoutSh(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
}

func TestRunPreGenEmptyCommand(t *testing.T) {
	runner := NewRunner(t.TempDir())

	overrides, err := runner.RunPreGen(context.Background(), "   ", render.Bindings{})
	if err != nil {
		t.Fatal(err)
	}
	if overrides != nil {
		t.Errorf("overrides = %v, want nil", overrides)
	}
}

func TestRunPreGenVarsOverride(t *testing.T) {
	skipWithoutSh(t)
	runner := NewRunner(t.TempDir())

	cmd := `sh -c 'echo "@quarry-vars:{\"name\":\"patched\",\"extra\":true}"'`
	overrides, err := runner.RunPreGen(context.Background(), cmd, render.Bindings{"name": "orig"})
	if err != nil {
		t.Fatal(err)
	}
	if overrides["name"] != "patched" || overrides["extra"] != true {
		t.Errorf("overrides = %v", overrides)
	}
}

func TestRunPreGenSeesVarEnv(t *testing.T) {
	skipWithoutSh(t)
	runner := NewRunner(t.TempDir())

	cmd := `sh -c 'echo "@quarry-vars:{\"echoed\":\"$QUARRY_VAR_NAME\"}"'`
	overrides, err := runner.RunPreGen(context.Background(), cmd, render.Bindings{"name": "shop"})
	if err != nil {
		t.Fatal(err)
	}
	if overrides["echoed"] != "shop" {
		t.Errorf("overrides = %v, want echoed=shop", overrides)
	}
}

func TestRunPreGenBadVarsJSON(t *testing.T) {
	skipWithoutSh(t)
	runner := NewRunner(t.TempDir())

	_, err := runner.RunPreGen(context.Background(), `sh -c 'echo "@quarry-vars:{broken"'`, render.Bindings{})
	var hookErr *HookError
	if !errors.As(err, &hookErr) {
		t.Errorf("err = %v, want HookError", err)
	}
}

func TestRunPostGenFailureReported(t *testing.T) {
	skipWithoutSh(t)
	runner := NewRunner(t.TempDir())

	err := runner.RunPostGen(context.Background(), "sh -c 'exit 3'", render.Bindings{}, nil)
	var hookErr *HookError
	if !errors.As(err, &hookErr) || hookErr.Kind != "post_gen" {
		t.Errorf("err = %v, want post_gen HookError", err)
	}
}

func TestRunPostGenSeesFiles(t *testing.T) {
	skipWithoutSh(t)
	runner := NewRunner(t.TempDir())

	// Fails unless QUARRY_FILES is populated.
	cmd := `sh -c 'test -n "$QUARRY_FILES"'`
	err := runner.RunPostGen(context.Background(), cmd, render.Bindings{}, []string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRunUnparsableCommand(t *testing.T) {
	runner := NewRunner(t.TempDir())

	err := runner.RunPostGen(context.Background(), `echo "unterminated`, render.Bindings{}, nil)
	var hookErr *HookError
	if !errors.As(err, &hookErr) {
		t.Errorf("err = %v, want HookError", err)
	}
}
