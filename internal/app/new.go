package app

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quarry-dev/quarry/internal/debug"
)

//go:embed all:scaffolds
var scaffoldsFS embed.FS

// NewBundleOptions holds options for scaffolding a new bundle.
type NewBundleOptions struct {
	// Path is the destination directory for the new bundle.
	Path string
	// Type is the scaffold type to use (e.g., "default").
	Type string
	// Force overwrites existing files if true.
	Force bool
}

// NewBundleResult holds the result of bundle scaffolding.
type NewBundleResult struct {
	// Path is the created bundle directory path.
	Path string
	// FilesCreated is the number of files created.
	FilesCreated int
	// Files is the list of created file paths.
	Files []string
}

// AvailableScaffoldTypes returns the list of available scaffold types.
func AvailableScaffoldTypes() ([]string, error) {
	entries, err := scaffoldsFS.ReadDir("scaffolds")
	if err != nil {
		return nil, fmt.Errorf("failed to read scaffolds directory: %w", err)
	}

	var types []string
	for _, entry := range entries {
		if entry.IsDir() {
			types = append(types, entry.Name())
		}
	}
	return types, nil
}

// NewBundle creates a starter bundle from an embedded scaffold.
func NewBundle(ctx context.Context, opts NewBundleOptions) (*NewBundleResult, error) {
	debug.DebugSection("[app] new bundle workflow start")
	debug.DebugValue("[app] target path", opts.Path)
	debug.DebugValue("[app] scaffold type", opts.Type)

	scaffoldPath := filepath.Join("scaffolds", opts.Type)
	if _, err := scaffoldsFS.ReadDir(scaffoldPath); err != nil {
		availableTypes, _ := AvailableScaffoldTypes()
		return nil, NewValidationError(
			fmt.Sprintf("unknown scaffold type: %s (available: %v)", opts.Type, availableTypes),
			err,
		)
	}

	absPath, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, NewValidationError("failed to resolve target path", err)
	}

	if info, err := os.Stat(absPath); err == nil {
		if !info.IsDir() {
			return nil, NewValidationError(
				fmt.Sprintf("target path exists and is not a directory: %s", absPath), nil)
		}
		entries, err := os.ReadDir(absPath)
		if err != nil {
			return nil, NewValidationError("failed to read target directory", err)
		}
		if len(entries) > 0 && !opts.Force {
			return nil, NewValidationError(
				fmt.Sprintf("target directory is not empty: %s (use --force to overwrite)", absPath), nil)
		}
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, NewValidationError("failed to create target directory", err)
	}

	result := &NewBundleResult{
		Path:  absPath,
		Files: []string{},
	}

	err = fs.WalkDir(scaffoldsFS, scaffoldPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath, err := filepath.Rel(scaffoldPath, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		targetPath := filepath.Join(absPath, relPath)
		if d.IsDir() {
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
			return nil
		}

		content, err := scaffoldsFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read scaffold file %s: %w", path, err)
		}
		if err := os.WriteFile(targetPath, content, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		result.FilesCreated++
		result.Files = append(result.Files, relPath)
		debug.DebugValue("[app] created file", targetPath)
		return nil
	})
	if err != nil {
		return nil, NewValidationError("failed to copy scaffold files", err)
	}

	debug.Debug("[app] new bundle workflow completed: %d file(s)", result.FilesCreated)
	return result, nil
}
