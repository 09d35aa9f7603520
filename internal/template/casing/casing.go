// Package casing provides the closed set of case-conversion transforms
// available to templates. Transform names are resolved to a tagged
// identifier once while scanning a template; rendering dispatches on
// the identifier, never on the name string.
package casing

import (
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Transform identifies one of the supported case conversions.
type Transform int

const (
	// CamelCase renders "my widget" as "myWidget".
	CamelCase Transform = iota
	// ConstantCase renders "my widget" as "MY_WIDGET".
	ConstantCase
	// DotCase renders "my widget" as "my.widget".
	DotCase
	// HeaderCase renders "my widget" as "My-Widget".
	HeaderCase
	// LowerCase renders "My Widget" as "my widget".
	LowerCase
	// PascalCase renders "my widget" as "MyWidget".
	PascalCase
	// ParamCase renders "my widget" as "my-widget".
	ParamCase
	// PathCase renders "my widget" as "my/widget".
	PathCase
	// SentenceCase renders "my_widget" as "My widget".
	SentenceCase
	// SnakeCase renders "MyWidget" as "my_widget".
	SnakeCase
	// TitleCase renders "my_widget" as "My Widget".
	TitleCase
	// UpperCase renders "my widget" as "MY WIDGET".
	UpperCase
)

var byName = map[string]Transform{
	"camelCase":    CamelCase,
	"constantCase": ConstantCase,
	"dotCase":      DotCase,
	"headerCase":   HeaderCase,
	"lowerCase":    LowerCase,
	"pascalCase":   PascalCase,
	"paramCase":    ParamCase,
	"pathCase":     PathCase,
	"sentenceCase": SentenceCase,
	"snakeCase":    SnakeCase,
	"titleCase":    TitleCase,
	"upperCase":    UpperCase,
}

// Names returns all transform names, for building token patterns.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}

// Parse resolves a transform name to its identifier.
func Parse(name string) (Transform, bool) {
	t, ok := byName[name]
	return t, ok
}

// Apply converts s using the transform.
func (t Transform) Apply(s string) string {
	switch t {
	case CamelCase:
		return strcase.ToLowerCamel(s)
	case ConstantCase:
		return strcase.ToScreamingSnake(s)
	case DotCase:
		return strcase.ToDelimited(s, '.')
	case HeaderCase:
		return capitalizeWords(strcase.ToDelimited(s, '-'), "-")
	case LowerCase:
		return strings.ToLower(s)
	case PascalCase:
		return strcase.ToCamel(s)
	case ParamCase:
		return strcase.ToKebab(s)
	case PathCase:
		return strcase.ToDelimited(s, '/')
	case SentenceCase:
		return upperFirst(strcase.ToDelimited(s, ' '))
	case SnakeCase:
		return strcase.ToSnake(s)
	case TitleCase:
		return capitalizeWords(strcase.ToDelimited(s, ' '), " ")
	case UpperCase:
		return strings.ToUpper(s)
	default:
		return s
	}
}

// capitalizeWords upper-cases the first rune of every separator-delimited word.
func capitalizeWords(s, sep string) string {
	words := strings.Split(s, sep)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, sep)
}

// upperFirst upper-cases the first rune of s.
func upperFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
