package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that the input data is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable indicates that an external service is unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrExtraction indicates that full-text extraction failed terminally.
	ErrExtraction = errors.New("extraction failed")
)

// ExtractionReason classifies why extraction failed.
type ExtractionReason string

// Extraction failure reasons.
const (
	// ReasonDownloadFailed means the document bytes could not be fetched.
	ReasonDownloadFailed ExtractionReason = "download-failed"

	// ReasonExtractionFailed means every extraction strategy errored.
	ReasonExtractionFailed ExtractionReason = "extraction-failed"

	// ReasonContentTooShort means the extracted text failed the quality
	// gate, usually a scanned image or access-protected document.
	ReasonContentTooShort ExtractionReason = "content-too-short"
)

// ExtractionError is the single terminal error surfaced by the text
// extractor after exhausting its strategies. Callers must treat it as
// "document unusable" rather than retrying.
type ExtractionError struct {
	Reason ExtractionReason
	URI    string
	Cause  error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.URI, e.Reason, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.URI, e.Reason)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ExtractionError) Unwrap() error {
	return ErrExtraction
}

// NotFoundError provides details about a not found entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError represents a validation error for a specific field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(reason ExtractionReason, uri string, cause error) *ExtractionError {
	return &ExtractionError{Reason: reason, URI: uri, Cause: cause}
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
