package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/casing"
)

var openDelim = []byte("{{")

// Render evaluates template content against bindings and partials.
//
// Content without a delimiter is returned as-is, byte-for-byte, with
// no copy. Any internal failure also returns the original content
// unchanged; Render never fails.
//
// Processing order:
//  1. Inject {{> name }} partials
//  2. Expand {{#name}}...{{/name}} loop sections
//  3. Substitute stray {{{value}}} element tokens
//  4. Strip {{~ }} comments
//  5. Apply {{transform key}} case-transform substitutions
//  6. Substitute {{name}} / {{name.field}} variables
func Render(content []byte, bindings Bindings, partials map[string][]byte) []byte {
	if !bytes.Contains(content, openDelim) {
		return content
	}

	out, err := renderStages(content, bindings, partials)
	if err != nil {
		debug.Debug("[render] recovered, returning content unchanged: %v", err)
		return content
	}
	return out
}

// renderStages runs the pass pipeline, converting panics from
// malformed input into an error so Render can fall back.
func renderStages(content []byte, bindings Bindings, partials map[string][]byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render failed: %v", r)
		}
	}()

	text := string(content)
	text = injectPartials(text, partials)
	text = expandSections(text, bindings)
	text = substituteStrayElements(text, bindings)
	text = stripComments(text)
	text = applyTransforms(text, bindings)
	text = substituteVars(text, bindings)
	return []byte(text), nil
}

// injectPartials replaces {{> name }} with the bytes of the partial
// whose path marker name matches. The injected bytes take part in the
// remaining passes; a partial referencing another partial is not
// expanded again. Unknown partial names render as empty, like missing
// variables.
func injectPartials(text string, partials map[string][]byte) string {
	if len(partials) == 0 {
		return includePattern.ReplaceAllString(text, "")
	}

	byName := make(map[string]string, len(partials))
	for partialPath, content := range partials {
		if name, ok := PartialName(partialPath); ok {
			byName[name] = string(content)
		}
	}

	return includePattern.ReplaceAllStringFunc(text, func(token string) string {
		name := includePattern.FindStringSubmatch(token)[1]
		return byName[name]
	})
}

// expandSections evaluates loop sections left to right. A section over
// a list binding emits its body once per element, with {{{value}}}
// tokens replaced by the element (or an element field). A section over
// anything else emits nothing — the falsy behavior.
func expandSections(text string, bindings Bindings) string {
	for {
		open := sectionOpenPattern.FindStringSubmatchIndex(text)
		if open == nil {
			return text
		}
		name := text[open[2]:open[3]]

		section := sectionPattern(name).FindStringSubmatchIndex(text)
		if section == nil {
			// Unclosed section: drop the opener and keep going.
			text = text[:open[0]] + text[open[1]:]
			continue
		}

		body := text[section[2]:section[3]]
		var expanded string
		if list, ok := bindings.List(name); ok {
			var sb strings.Builder
			for _, elem := range list {
				sb.WriteString(substituteElements(body, elem))
			}
			expanded = sb.String()
		}
		text = text[:section[0]] + expanded + text[section[1]:]
	}
}

// substituteElements replaces {{{value}}} tokens against one loop
// element. "." and the empty key insert the element itself; any other
// key indexes into a map-valued element.
func substituteElements(text string, elem interface{}) string {
	return elementPattern.ReplaceAllStringFunc(text, func(token string) string {
		key := elementPattern.FindStringSubmatch(token)[1]
		if key == "" || key == "." {
			return Stringify(elem)
		}
		if m, ok := asMap(elem); ok {
			return Stringify(m[key])
		}
		return ""
	})
}

// substituteStrayElements resolves {{{value}}} tokens left outside any
// loop section as unescaped variable lookups; {{{.}}} has no element
// to refer to and renders empty.
func substituteStrayElements(text string, bindings Bindings) string {
	return elementPattern.ReplaceAllStringFunc(text, func(token string) string {
		key := elementPattern.FindStringSubmatch(token)[1]
		if key == "" || key == "." {
			return ""
		}
		val, ok := bindings.Lookup(key)
		if !ok {
			return ""
		}
		return Stringify(val)
	})
}

// stripComments removes {{~ }} tokens.
func stripComments(text string) string {
	return commentPattern.ReplaceAllString(text, "")
}

// applyTransforms substitutes {{transform key}} tokens. The transform
// name was matched against the closed set, so Parse cannot miss.
func applyTransforms(text string, bindings Bindings) string {
	return transformPattern.ReplaceAllStringFunc(text, func(token string) string {
		m := transformPattern.FindStringSubmatch(token)
		transform, _ := casing.Parse(m[1])
		val, ok := bindings.Lookup(m[2])
		if !ok {
			return ""
		}
		return transform.Apply(Stringify(val))
	})
}

// substituteVars substitutes plain {{name}} tokens, with dotted paths
// into nested maps. Missing keys render as empty strings.
func substituteVars(text string, bindings Bindings) string {
	return varPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := varPattern.FindStringSubmatch(token)[1]
		val, ok := bindings.Lookup(name)
		if !ok {
			return ""
		}
		return Stringify(val)
	})
}
