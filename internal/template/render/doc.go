// Package render evaluates the template markup language against a
// variable binding map and a partial-content map.
//
// The grammar is fixed and evaluated left-to-right in staged passes:
//
//	{{> name }}                          partial inclusion
//	{{#name}} ... {{{value}}} ... {{/name}}  loop over a list binding
//	{{~ anything }}                      comment, removed
//	{{snakeCase key}} (and 11 siblings)  case-transform substitution
//	{{name}} / {{name.field}}            plain substitution
//
// Rendering is best-effort: content without a delimiter is returned
// untouched (same backing bytes, no copy), and any internal failure
// yields the original bytes instead of an error.
//
// Nested loop sections with different names inside one loop body are
// unsupported; no particular behavior is promised for them.
package render
