package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/hooks"
	"github.com/quarry-dev/quarry/internal/template/bundle"
	"github.com/quarry-dev/quarry/internal/template/generator"
	"github.com/quarry-dev/quarry/internal/template/model"
	"github.com/quarry-dev/quarry/internal/template/render"
)

// GenerateOptions holds options for a generation run.
type GenerateOptions struct {
	// BundleDir is the bundle directory to load.
	BundleDir string
	// OutputDir is the destination directory. Defaults to the current
	// working directory when empty.
	OutputDir string
	// VarFlags are name=value variable overrides from the command line.
	VarFlags []string
	// OnConflict is the conflict policy flag value ("prompt",
	// "overwrite", "skip", "append").
	OnConflict string
	// DryRun renders everything into memory instead of the filesystem.
	DryRun bool
	// SkipHooks disables the bundle's pre/post generation hooks.
	SkipHooks bool
	// VarPrompter collects values for unset variables. Nil makes the
	// run non-interactive.
	VarPrompter VarPrompter
	// ConflictPrompter answers file-conflict questions. Nil is valid
	// only with a non-prompt conflict policy.
	ConflictPrompter generator.ConflictPrompter
}

// GenerateResult holds the outcome of a generation run.
type GenerateResult struct {
	// Bundle is the loaded bundle.
	Bundle *model.Bundle
	// Bindings are the resolved variables the run used.
	Bindings render.Bindings
	// Files are the per-file outcomes in commit order.
	Files []model.GeneratedFile
	// DryRun reports whether the filesystem was left untouched.
	DryRun bool
}

// Generate runs the full generation workflow: load the bundle, resolve
// variables, run the pre hook, render and commit every file, then run
// the post hook.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] generate workflow start")
	debug.DebugValue("[app] bundle dir", opts.BundleDir)
	debug.DebugValue("[app] dry run", opts.DryRun)

	resolution, err := generator.ParseConflictResolution(opts.OnConflict)
	if err != nil {
		return nil, NewValidationError("invalid --on-conflict value", err)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir, err = os.Getwd()
		if err != nil {
			return nil, NewValidationError("failed to resolve output directory", err)
		}
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return nil, NewValidationError("failed to resolve output directory", err)
	}
	debug.DebugValue("[app] output dir", outputDir)

	loaded, err := bundle.Load(ctx, opts.BundleDir)
	if err != nil {
		return nil, NewBundleLoadError(fmt.Sprintf("failed to load bundle from %s", opts.BundleDir), err)
	}

	bindings, err := ResolveVariables(&loaded.Config, opts.VarFlags, opts.VarPrompter)
	if err != nil {
		return nil, err
	}

	runner := hooks.NewRunner(outputDir)
	if !opts.SkipHooks && !opts.DryRun {
		overrides, err := runner.RunPreGen(ctx, loaded.Config.Hooks.PreGen, bindings)
		if err != nil {
			return nil, NewHookError("pre-generation hook failed", err)
		}
		if len(overrides) > 0 {
			bindings = bindings.Merge(overrides)
		}
	}

	var target generator.Target
	if opts.DryRun {
		target = generator.NewMemoryTarget(opts.ConflictPrompter)
	} else {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, NewGenerateError("failed to create output directory", err)
		}
		target = generator.NewDirectoryTarget(outputDir, opts.ConflictPrompter)
	}

	files, err := generator.New(loaded).Generate(ctx, target, bindings, resolution)
	if err != nil {
		return nil, NewGenerateError("generation failed", err)
	}

	if !opts.SkipHooks && !opts.DryRun {
		paths := make([]string, 0, len(files))
		for _, f := range files {
			if f.Status != model.StatusSkipped {
				paths = append(paths, f.Path)
			}
		}
		if err := runner.RunPostGen(ctx, loaded.Config.Hooks.PostGen, bindings, paths); err != nil {
			return nil, NewHookError("post-generation hook failed", err)
		}
	}

	debug.Debug("[app] generate workflow completed: %d file(s)", len(files))
	return &GenerateResult{
		Bundle:   loaded,
		Bindings: bindings,
		Files:    files,
		DryRun:   opts.DryRun,
	}, nil
}
