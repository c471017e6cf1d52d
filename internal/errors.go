package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory represents the type of error encountered while processing a file
type ErrorCategory string

const (
	ErrorCategoryIO        ErrorCategory = "io_error"            // File unreadable/unwritable, permissions, disk space
	ErrorCategoryMetadata  ErrorCategory = "metadata_error"      // EXIF extraction or date parse failed
	ErrorCategoryCollision ErrorCategory = "collision_exhausted" // Suffix renaming never found a free name
	ErrorCategoryUnknown   ErrorCategory = "unknown_error"       // Unexpected errors
)

// ErrSuffixExhausted is returned when collision renaming hits the retry cap
// instead of looping forever.
var ErrSuffixExhausted = errors.New("collision suffix limit reached")

// ProcessError represents a categorized error during file processing
type ProcessError struct {
	FilePath    string
	Category    ErrorCategory
	OriginalErr error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// CategorizeError analyzes an error and returns a ProcessError with a category
func CategorizeError(filePath string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	procErr := &ProcessError{
		FilePath:    filePath,
		OriginalErr: err,
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, ErrSuffixExhausted):
		procErr.Category = ErrorCategoryCollision

	case strings.Contains(errStr, "no space left"),
		strings.Contains(errStr, "permission denied"),
		strings.Contains(errStr, "no such file"),
		strings.Contains(errStr, "input/output error"),
		strings.Contains(errStr, "read-only file system"),
		strings.Contains(errStr, "too many open files"):
		procErr.Category = ErrorCategoryIO

	case strings.Contains(errStr, "exif"), strings.Contains(errStr, "metadata"):
		procErr.Category = ErrorCategoryMetadata

	default:
		procErr.Category = ErrorCategoryUnknown
	}

	return procErr
}
