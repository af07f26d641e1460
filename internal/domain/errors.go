package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	// ErrUnauthenticated is returned when no identity is bound to the call.
	ErrUnauthenticated = fmt.Errorf("%w: no authenticated user", ErrUnauthorized)

	// ErrEmptyPath is returned when a folder path has no non-blank segments.
	ErrEmptyPath = fmt.Errorf("%w: folder path is empty", ErrValidation)

	// ErrConflictRetriesExhausted means the store kept reporting a uniqueness
	// conflict without ever returning a readable row.
	ErrConflictRetriesExhausted = errors.New("folder conflict retries exhausted")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (wedding, folder, media)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// FolderCreationError reports a non-conflict failure while materializing one
// segment of a folder path. Folders created above the failing segment are kept.
type FolderCreationError struct {
	Segment string
	Err     error
}

func (e *FolderCreationError) Error() string {
	return fmt.Sprintf("create folder %q: %v", e.Segment, e.Err)
}

func (e *FolderCreationError) Unwrap() error {
	return e.Err
}

// StatusCode implements the HTTPError interface
func (e *FolderCreationError) StatusCode() int {
	if errors.Is(e.Err, ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ClassificationError describes why a media classification produced no result.
// It never crosses the classifier boundary as an error; callers receive the
// message in the analysis result instead.
type ClassificationError struct {
	Message string
	Err     error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
