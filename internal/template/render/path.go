package render

import "strings"

// NormalizePath rewrites path separators to forward slashes so loop
// markers and segments match the same way on every platform.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// ExpandPathSections rewrites loop sections embedded in a file path
// into plain substitution tokens, so the path can be rendered once per
// permutation: {{#models}}{{{.}}}{{/models}} becomes {{models}}, and
// {{#models}}{{{name}}}{{/models}} becomes {{models.name}}. Sections
// over non-list bindings are removed, matching the falsy loop
// behavior in content. The second result reports whether any
// list-backed section was rewritten, which is what makes a path
// participate in permutation.
func ExpandPathSections(path string, bindings Bindings) (string, bool) {
	text := NormalizePath(path)
	rewritten := false

	for {
		open := sectionOpenPattern.FindStringSubmatchIndex(text)
		if open == nil {
			return text, rewritten
		}
		name := text[open[2]:open[3]]

		section := sectionPattern(name).FindStringSubmatchIndex(text)
		if section == nil {
			text = text[:open[0]] + text[open[1]:]
			continue
		}

		body := text[section[2]:section[3]]
		var repl string
		if _, ok := bindings.List(name); ok {
			repl = elementPattern.ReplaceAllStringFunc(body, func(token string) string {
				key := elementPattern.FindStringSubmatch(token)[1]
				if key == "" || key == "." {
					return "{{" + name + "}}"
				}
				return "{{" + name + "." + key + "}}"
			})
			rewritten = true
		}
		text = text[:section[0]] + repl + text[section[1]:]
	}
}
