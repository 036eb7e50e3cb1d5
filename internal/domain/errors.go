package domain

import (
	"fmt"
	"strings"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnknownDomain = "UNKNOWN_DOMAIN"
	ErrCodeStoreRead     = "STORE_READ_ERROR"
	ErrCodeStoreWrite    = "STORE_WRITE_ERROR"
	ErrCodeExtraction    = "EXTRACTION_ERROR"
	ErrCodeGeneration    = "GENERATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrEmptyQuery           = NewDomainError(ErrCodeValidation, "query cannot be empty")
	ErrEmptyNamespace       = NewDomainError(ErrCodeValidation, "namespace cannot be empty")
)

// Authorization errors
var (
	ErrInvalidAPIKey = NewDomainError(ErrCodeUnauthorized, "invalid api key")
)

// NewStoreReadError wraps a vector index or embedding failure during retrieval.
func NewStoreReadError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStoreRead, message, err)
}

// NewStoreWriteError wraps a vector index or embedding failure during ingestion.
func NewStoreWriteError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStoreWrite, message, err)
}

// NewExtractionError wraps a document extraction failure.
func NewExtractionError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeExtraction, message, err)
}

// NewGenerationError wraps a retrieval or text-generation failure in the
// answer pipeline.
func NewGenerationError(message string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeGeneration, message, err)
}

// NewUnknownDomainError reports an unresolvable domain identifier.
func NewUnknownDomainError(domainID string, available []string) *DomainError {
	return NewDomainError(ErrCodeUnknownDomain,
		fmt.Sprintf("agent type '%s' is not supported, available agents: %s", domainID, strings.Join(available, ", ")))
}
