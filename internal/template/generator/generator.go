package generator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/model"
	"github.com/quarry-dev/quarry/internal/template/render"
)

const fetchTimeout = 30 * time.Second

// Generator renders a loaded bundle into a target.
type Generator struct {
	files    []model.TemplateFile
	partials map[string][]byte
	client   *http.Client
}

// New creates a generator for a loaded bundle.
func New(bundle *model.Bundle) *Generator {
	return &Generator{
		files:    bundle.Files,
		partials: bundle.Partials,
		client:   &http.Client{Timeout: fetchTimeout},
	}
}

// Generate renders every template file against the bindings and
// commits the results to the target, in template order. The resolution
// policy seeds the target's conflict handling. The returned records
// are in commit order.
//
// A single template path may commit several files (loop permutations);
// duplicate (path, content) pairs produced by the same template are
// committed once.
func (g *Generator) Generate(ctx context.Context, target Target, bindings render.Bindings, resolution ConflictResolution) ([]model.GeneratedFile, error) {
	rule := resolution.Rule()

	var results []model.GeneratedFile
	for _, file := range g.files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if key, ok := render.FetchKey(file.Path); ok {
			generated, err := g.fetchExternal(ctx, target, key, bindings, rule)
			if err != nil {
				return results, err
			}
			results = append(results, generated...)
			continue
		}

		generated, err := g.generateFile(ctx, target, file, bindings, rule)
		if err != nil {
			return results, err
		}
		results = append(results, generated...)
	}
	return results, nil
}

// generateFile expands one template path, renders each surviving
// permutation, and commits the distinct outputs.
func (g *Generator) generateFile(ctx context.Context, target Target, file model.TemplateFile, bindings render.Bindings, rule *OverwriteRule) ([]model.GeneratedFile, error) {
	outputs := g.renderExpansions(file, bindings)

	var results []model.GeneratedFile
	for _, out := range outputs {
		generated, err := target.CreateFile(ctx, out.Path, out.Content, rule)
		if err != nil {
			return results, err
		}
		results = append(results, generated)
	}
	return results, nil
}

// renderExpansions produces the rendered (path, content) pairs for one
// template file. Permutations of the same template that land on the
// same path with the same bytes collapse to one output.
func (g *Generator) renderExpansions(file model.TemplateFile, bindings render.Bindings) []model.FileContents {
	expansions := ExpandPath(file.Path, bindings)

	var outputs []model.FileContents
	seen := make(map[string]struct{}, len(expansions))
	for _, exp := range expansions {
		if !KeepPath(file.Path, exp.Path) {
			continue
		}

		content := render.Render(file.Content, bindings.Merge(exp.Overlay), g.partials)

		dedup := exp.Path + "\x00" + string(content)
		if _, dup := seen[dedup]; dup {
			debug.Debug("[generator] skipping duplicate permutation %s", exp.Path)
			continue
		}
		seen[dedup] = struct{}{}

		outputs = append(outputs, model.FileContents{Path: exp.Path, Content: content})
	}
	return outputs
}

// fetchExternal resolves a fetch-marker file: the key names a binding
// whose value is a local path or an http(s) URL, and the fetched bytes
// are committed verbatim under the source's base name. An unbound key
// or empty source is skipped silently so optional assets can be left
// unset.
func (g *Generator) fetchExternal(ctx context.Context, target Target, key string, bindings render.Bindings, rule *OverwriteRule) ([]model.GeneratedFile, error) {
	value, ok := bindings.Lookup(key)
	if !ok {
		debug.Debug("[generator] fetch key %q unbound, skipping", key)
		return nil, nil
	}
	source := strings.TrimSpace(render.Stringify(value))
	if source == "" {
		debug.Debug("[generator] fetch key %q empty, skipping", key)
		return nil, nil
	}

	name := path.Base(render.NormalizePath(source))
	if name == "" || name == "." || name == "/" {
		debug.Debug("[generator] fetch source %q has no file name, skipping", source)
		return nil, nil
	}

	content, err := g.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	generated, err := target.CreateFile(ctx, name, content, rule)
	if err != nil {
		return nil, err
	}
	return []model.GeneratedFile{generated}, nil
}

// fetch reads the source, downloading when it is an http(s) URL and
// reading the local file otherwise.
func (g *Generator) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return g.download(ctx, source)
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return nil, newGenerateError(FetchFailed, "failed to read external content", source, err)
	}
	return content, nil
}

func (g *Generator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newGenerateError(FetchFailed, "invalid external content url", url, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, newGenerateError(FetchFailed, "failed to download external content", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newGenerateError(FetchFailed,
			fmt.Sprintf("unexpected status %s downloading external content", resp.Status), url, nil)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newGenerateError(FetchFailed, "failed to read external content response", url, err)
	}
	return content, nil
}
