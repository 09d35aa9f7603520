package generator

import (
	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/render"
)

// Expansion is one concrete output slot produced by expanding a
// template path: the rendered path plus the binding overlay (one
// element per permuted list) used to render the content for it.
type Expansion struct {
	// Path is the rendered output path, forward-slashed.
	Path string
	// Overlay holds the per-permutation element bindings, to be
	// merged on top of the caller's bindings for content rendering.
	Overlay render.Bindings
}

// ExpandPath resolves loop markers embedded in a template path into
// one or more concrete expansions.
//
// A path without list-backed loop sections renders exactly once with
// an empty overlay. A path with at least one list-backed loop section
// is rendered once per tuple of the Cartesian product across all
// list-valued top-level bindings. The product is walked with an
// iterative counter odometer, so templates referencing many list
// variables cannot grow the stack.
func ExpandPath(path string, bindings render.Bindings) []Expansion {
	rewritten, hasLoops := render.ExpandPathSections(path, bindings)

	if !hasLoops {
		rendered := string(render.Render([]byte(rewritten), bindings, nil))
		return []Expansion{{Path: rendered, Overlay: render.Bindings{}}}
	}

	names := bindings.ListNames()
	lists := make([][]interface{}, len(names))
	for i, name := range names {
		lists[i], _ = bindings.List(name)
		if len(lists[i]) == 0 {
			// An empty list makes the whole product empty.
			debug.Debug("[generator] expand: list %q is empty, no permutations for %s", name, path)
			return nil
		}
	}

	var expansions []Expansion
	counters := make([]int, len(names))
	for {
		overlay := make(render.Bindings, len(names))
		for i, name := range names {
			overlay[name] = lists[i][counters[i]]
		}

		merged := bindings.Merge(overlay)
		rendered := string(render.Render([]byte(rewritten), merged, nil))
		expansions = append(expansions, Expansion{Path: rendered, Overlay: overlay})

		// Advance the odometer, least-significant list last.
		i := len(counters) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(lists[i]) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}

	debug.Debug("[generator] expand: %s -> %d permutation(s)", path, len(expansions))
	return expansions
}
