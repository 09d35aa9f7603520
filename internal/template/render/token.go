package render

import (
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/quarry-dev/quarry/internal/template/casing"
)

// Token patterns for the markup grammar. Loop sections are matched by
// per-name patterns (see sectionPattern) because the closing tag must
// repeat the opening name.
var (
	// {{~ expr }} — comment (and, on file paths, the partial marker).
	commentPattern = regexp.MustCompile(`\{\{~\s*([^{}]*?)\s*\}\}`)

	// {{> name }} — partial inclusion.
	includePattern = regexp.MustCompile(`\{\{>\s*([^{}]+?)\s*\}\}`)

	// {{{value}}} — element insertion inside a loop body.
	elementPattern = regexp.MustCompile(`\{\{\{\s*([^{}]*?)\s*\}\}\}`)

	// {{#name}} — loop section opener.
	sectionOpenPattern = regexp.MustCompile(`\{\{#([A-Za-z_][A-Za-z0-9_]*)\}\}`)

	// {{name}} / {{name.field}} — plain substitution.
	varPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

	// {{% key %}} — external-content fetch marker, whole path only.
	fetchPattern = regexp.MustCompile(`^\{\{%\s*([A-Za-z_][A-Za-z0-9_.]*)\s*%\}\}$`)

	// {{~ name }} as a complete file base name — the partial marker.
	partialMarkerPattern = regexp.MustCompile(`^\{\{~\s*(.+?)\s*\}\}$`)

	// {{transformName key}} — case-transform substitution. The
	// alternation is built from the closed transform set once.
	transformPattern = buildTransformPattern()
)

func buildTransformPattern() *regexp.Regexp {
	names := casing.Names()
	sort.Strings(names)
	return regexp.MustCompile(`\{\{\s*(` + strings.Join(names, "|") + `)\s+([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)
}

var (
	sectionMu       sync.Mutex
	sectionPatterns = map[string]*regexp.Regexp{}
)

// sectionPattern returns the compiled pattern matching a whole loop
// section {{#name}}...{{/name}} for one name, caching compilations.
func sectionPattern(name string) *regexp.Regexp {
	sectionMu.Lock()
	defer sectionMu.Unlock()
	if re, ok := sectionPatterns[name]; ok {
		return re
	}
	re := regexp.MustCompile(`(?s)\{\{#` + regexp.QuoteMeta(name) + `\}\}(.*?)\{\{/` + regexp.QuoteMeta(name) + `\}\}`)
	sectionPatterns[name] = re
	return re
}

// PartialName extracts the partial name from a file path whose base
// name matches the partial marker {{~ name }}. Returns false for
// ordinary template paths.
func PartialName(filePath string) (string, bool) {
	base := path.Base(strings.ReplaceAll(filePath, `\`, "/"))
	m := partialMarkerPattern.FindStringSubmatch(base)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// FetchKey extracts the binding key from an external-content fetch
// marker path {{% key %}}. Returns false for ordinary paths.
func FetchKey(filePath string) (string, bool) {
	m := fetchPattern.FindStringSubmatch(strings.TrimSpace(filePath))
	if m == nil {
		return "", false
	}
	return m[1], true
}
