// Package bundle loads template bundles from the local filesystem.
//
// A bundle is a directory with a bundle.yaml at its root and the
// template files under __bundle__/. Files whose base name is a partial
// marker ({{~ name }}) are routed to the bundle's partial set instead
// of the renderable file list.
package bundle

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quarry-dev/quarry/internal/config"
	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/model"
	"github.com/quarry-dev/quarry/internal/template/render"
)

// maxConcurrentReads bounds the number of template files read at once.
const maxConcurrentReads = 32

// Load reads the bundle at dir: bundle.yaml plus every file under the
// template directory. Template files are returned sorted by path so
// generation order is deterministic regardless of filesystem order.
func Load(ctx context.Context, dir string) (*model.Bundle, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, NewLoadError(dir, "failed to resolve bundle directory", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewLoadError(absDir, "bundle directory does not exist", err)
		}
		return nil, NewLoadError(absDir, "failed to stat bundle directory", err)
	}
	if !info.IsDir() {
		return nil, NewLoadError(absDir, "bundle path is not a directory", nil)
	}

	cfg, err := config.LoadBundleConfig(absDir)
	if err != nil {
		return nil, err
	}

	templateRoot := filepath.Join(absDir, model.BundleTemplateDir)
	if _, err := os.Stat(templateRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, NewLoadError(absDir, "bundle has no "+model.BundleTemplateDir+" directory", err)
		}
		return nil, NewLoadError(absDir, "failed to stat template directory", err)
	}

	files, partials, err := collectFiles(ctx, templateRoot)
	if err != nil {
		return nil, err
	}

	debug.Debug("[bundle] loaded %s v%s: %d file(s), %d partial(s)",
		cfg.Name, cfg.Version, len(files), len(partials))

	return &model.Bundle{
		Config:   *cfg,
		Files:    files,
		Partials: partials,
		RootPath: absDir,
	}, nil
}

// collectFiles walks the template root and reads every regular file,
// at most maxConcurrentReads at a time.
func collectFiles(ctx context.Context, templateRoot string) ([]model.TemplateFile, map[string][]byte, error) {
	var paths []string
	err := filepath.WalkDir(templateRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				debug.Debug("[bundle] skipping broken entry: %s", path)
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			debug.Debug("[bundle] skipping non-regular file: %s", path)
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, NewLoadError(templateRoot, "failed to walk template directory", err)
	}

	var (
		mu       sync.Mutex
		files    []model.TemplateFile
		partials = make(map[string][]byte)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return NewLoadError(path, "failed to read template file", err)
			}

			rel, err := filepath.Rel(templateRoot, path)
			if err != nil {
				return NewLoadError(path, "failed to resolve relative path", err)
			}
			rel = filepath.ToSlash(rel)

			mu.Lock()
			defer mu.Unlock()
			if _, ok := render.PartialName(rel); ok {
				partials[rel] = content
			} else {
				files = append(files, model.TemplateFile{Path: rel, Content: content})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, partials, nil
}
