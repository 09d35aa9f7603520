package generator

import (
	"strings"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/render"
)

// KeepPath reports whether an expanded path may reach the generation
// target. Discarded paths are not errors; they are the expected waste
// of rendering loop markers against empty or unbound values:
//   - a path that rendered to nothing
//   - a path whose absoluteness flipped relative to the template path
//   - a path with an empty segment between separators
func KeepPath(templatePath, expandedPath string) bool {
	original := render.NormalizePath(templatePath)
	expanded := render.NormalizePath(expandedPath)

	if strings.TrimSpace(expanded) == "" {
		debug.Debug("[generator] dropping empty expansion of %s", templatePath)
		return false
	}

	if strings.HasPrefix(original, "/") != strings.HasPrefix(expanded, "/") {
		debug.Debug("[generator] dropping %s: absoluteness changed from %s", expandedPath, templatePath)
		return false
	}

	if strings.Contains(expanded, "//") {
		debug.Debug("[generator] dropping %s: empty path segment", expandedPath)
		return false
	}

	return true
}
