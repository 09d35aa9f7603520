package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// BundleLoadFailed indicates the bundle could not be loaded.
	BundleLoadFailed AppErrorType = iota
	// VariableResolveFailed indicates variable resolution failed.
	VariableResolveFailed
	// GenerateFailed indicates file generation failed.
	GenerateFailed
	// HookFailed indicates a bundle hook failed.
	HookFailed
	// ValidationFailed indicates option validation failed.
	ValidationFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewBundleLoadError creates a bundle load error.
func NewBundleLoadError(message string, cause error) *AppError {
	return NewAppError(BundleLoadFailed, message, cause)
}

// NewVariableResolveError creates a variable resolution error.
func NewVariableResolveError(message string, cause error) *AppError {
	return NewAppError(VariableResolveFailed, message, cause)
}

// NewGenerateError creates a generation error.
func NewGenerateError(message string, cause error) *AppError {
	return NewAppError(GenerateFailed, message, cause)
}

// NewHookError creates a hook error.
func NewHookError(message string, cause error) *AppError {
	return NewAppError(HookFailed, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
