package types

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected mutation. The graph is left unchanged and
// the offending task ids are carried so callers can report them.
type ValidationError struct {
	Code    string
	Message string
	TaskIDs []int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a ValidationError for the given task ids.
func NewValidationError(code, message string, taskIDs ...int) *ValidationError {
	return &ValidationError{Code: code, Message: message, TaskIDs: taskIDs}
}

// StorageError is fatal to the current command. It covers load/save failures
// and invariant violations found in on-disk state (e.g. a cycle in a loaded
// graph), which are never auto-repaired.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// GenerationError is a recoverable text-generation failure. Commands degrade
// to "no AI suggestion produced" and never leave a partial graph mutation.
type GenerationError struct {
	Kind string // "unavailable" or "timeout"
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ErrGenerationUnavailable and ErrGenerationTimeout classify provider
// failures. Wrap them so errors.Is works across the llm package boundary.
var (
	ErrGenerationUnavailable = errors.New("text-generation service unreachable")
	ErrGenerationTimeout     = errors.New("text-generation request timed out")
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsGeneration reports whether err is (or wraps) a GenerationError.
func IsGeneration(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
