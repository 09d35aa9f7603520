package model

// TemplateFile is a single file inside a bundle, as loaded from disk.
// The path may itself contain template markup (loop sections, variable
// tokens, or the external-content marker). TemplateFiles are immutable
// once loaded.
type TemplateFile struct {
	// Path is the file path relative to the bundle's template root,
	// always using forward slashes.
	Path string
	// Content is the raw template bytes.
	Content []byte
}

// FileContents is a rendered (path, content) pair produced by path
// expansion. Two FileContents are the same output file when both path
// and content bytes are equal.
type FileContents struct {
	// Path is the output path relative to the generation target root.
	Path string
	// Content is the rendered bytes.
	Content []byte
}

// GeneratedFileStatus describes what a generation target did with a
// committed file.
type GeneratedFileStatus int

const (
	// StatusCreated means the file did not exist and was written.
	StatusCreated GeneratedFileStatus = iota
	// StatusOverwritten means an existing file was replaced.
	StatusOverwritten
	// StatusAppended means the content was appended to an existing file.
	StatusAppended
	// StatusSkipped means an existing file was left untouched.
	StatusSkipped
	// StatusIdentical means the existing file already had the rendered bytes.
	StatusIdentical
)

// String returns the status name.
func (s GeneratedFileStatus) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusOverwritten:
		return "overwritten"
	case StatusAppended:
		return "appended"
	case StatusSkipped:
		return "skipped"
	case StatusIdentical:
		return "identical"
	default:
		return "unknown"
	}
}

// GeneratedFile is the durable per-file record returned to the caller
// after generation, in commit order.
type GeneratedFile struct {
	// Path is the absolute (or target-relative, for in-memory targets)
	// path of the committed file.
	Path string
	// Status is the conflict-resolution outcome for this file.
	Status GeneratedFileStatus
}
