package hooks

import "fmt"

// HookError is a hook execution failure.
type HookError struct {
	// Kind is the hook kind, "pre_gen" or "post_gen".
	Kind string
	// Command is the configured hook command line.
	Command string
	// Message is the error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	if e.Command != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s hook %q: %s: %v", e.Kind, e.Command, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s hook %q: %s", e.Kind, e.Command, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s hook: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s hook: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// NewHookError creates a new HookError.
func NewHookError(kind, command, message string, cause error) *HookError {
	return &HookError{Kind: kind, Command: command, Message: message, Cause: cause}
}
