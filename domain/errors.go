package domain

import "fmt"

// Error codes for domain errors
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeFileNotFound  = "FILE_NOT_FOUND"
	ErrCodeFileRead      = "FILE_READ_ERROR"
	ErrCodeAnalysisError = "ANALYSIS_ERROR"
	ErrCodeConfigError   = "CONFIG_ERROR"
	ErrCodeOutputError   = "OUTPUT_ERROR"
	ErrCodeTimeout       = "TIMEOUT"
)

// DomainError represents a structured error with a stable code
type DomainError struct {
	// Code is the machine-readable error code
	Code string

	// Message is the human-readable description
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error with the given code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError creates an error for malformed input
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates an error for a missing file
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewFileReadError creates an error for an unreadable file
func NewFileReadError(path string, cause error) error {
	return NewDomainError(ErrCodeFileRead, fmt.Sprintf("failed to read file: %s", path), cause)
}

// NewAnalysisError creates an error for analysis failures
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysisError, message, cause)
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an error for output writing failures
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewTimeoutError creates an error for analysis timeouts
func NewTimeoutError(message string, cause error) error {
	return NewDomainError(ErrCodeTimeout, message, cause)
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code string) bool {
	if err == nil {
		return false
	}
	if de, ok := err.(DomainError); ok {
		return de.Code == code
	}
	return false
}
