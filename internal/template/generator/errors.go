package generator

import "fmt"

// GenerateErrorType categorizes generation errors.
type GenerateErrorType int

const (
	// FetchFailed indicates an external-content source could not be
	// read or downloaded.
	FetchFailed GenerateErrorType = iota
	// WriteFailed indicates a target file or directory operation failed.
	WriteFailed
	// PromptRequired indicates a conflict needed an interactive answer
	// but no prompter was configured. This is a caller configuration
	// error: supply a non-interactive conflict policy instead.
	PromptRequired
)

// GenerateError is a generation failure with file context.
type GenerateError struct {
	// Type categorizes the error.
	Type GenerateErrorType
	// Message is the error message.
	Message string
	// Path is the related file path or source location, if any.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Cause)
		}
		return fmt.Sprintf("%s (%s)", e.Message, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

func newGenerateError(typ GenerateErrorType, message, path string, cause error) *GenerateError {
	return &GenerateError{
		Type:    typ,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
