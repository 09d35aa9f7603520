package bundle

import "fmt"

// LoadError is a bundle loading failure with path context.
type LoadError struct {
	// Path is the bundle directory or file that failed.
	Path string
	// Message is the error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Path)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NewLoadError creates a new LoadError.
func NewLoadError(path, message string, cause error) *LoadError {
	return &LoadError{Path: path, Message: message, Cause: cause}
}
