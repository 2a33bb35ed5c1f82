package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Store errors (missing notes/folders, hierarchy violations)
	ErrTypeStore ErrorType = "store"
	// Validation errors
	ErrTypeValidation ErrorType = "validation"
	// Persistence errors
	ErrTypePersistence ErrorType = "persistence"
	// Suggestion provider errors
	ErrTypeSuggestion ErrorType = "suggestion"
	// Configuration errors
	ErrTypeConfig ErrorType = "configuration"
	// Generic application errors
	ErrTypeApp ErrorType = "application"
)

// AppError represents a structured application error
type AppError struct {
	Type        ErrorType              `json:"type"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	UserMessage string                 `json:"userMessage"`
	InternalErr error                  `json:"-"`
	Retryable   bool                   `json:"retryable"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.InternalErr != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.InternalErr)
	}
	msg := fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
	if len(e.Context) > 0 {
		var parts []string
		for k, v := range e.Context {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
		msg += fmt.Sprintf(" [%s]", strings.Join(parts, ", "))
	}
	return msg
}

// Unwrap exposes the wrapped error to errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.InternalErr
}

// Is matches two AppErrors by type and code so sentinel errors compare
// equal after WithContext has copied them
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// GetUserMessage returns a user-friendly error message
func (e *AppError) GetUserMessage() string {
	if e.UserMessage != "" {
		return e.UserMessage
	}
	return e.Message
}

// WithContext returns a copy of the error with context information added.
// Sentinel errors stay untouched
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	c := *e
	c.Context = make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		c.Context[k] = v
	}
	c.Context[key] = value
	return &c
}

// WithUserMessage sets a user-friendly message
func (e *AppError) WithUserMessage(msg string) *AppError {
	e.UserMessage = msg
	return e
}

// WithRetryable marks the error as retryable
func (e *AppError) WithRetryable(retryable bool) *AppError {
	e.Retryable = retryable
	return e
}

// IsRetryable checks if the error can be retried
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// New creates a new AppError
func New(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:        errType,
		Code:        code,
		Message:     message,
		InternalErr: err,
	}
}

// Predefined errors for common scenarios
var (
	// Store errors
	ErrNoteNotFound = New(ErrTypeStore, "NOTE_NOT_FOUND", "note not found").
			WithUserMessage("The requested note could not be found")

	ErrFolderNotFound = New(ErrTypeStore, "FOLDER_NOT_FOUND", "folder not found").
				WithUserMessage("The requested folder could not be found")

	ErrMaxDepthExceeded = New(ErrTypeStore, "MAX_DEPTH_EXCEEDED", "sub-page nesting limit reached").
				WithUserMessage("Sub-pages can only be nested three levels deep")

	ErrTagNotFound = New(ErrTypeStore, "TAG_NOT_FOUND", "tag not found on note").
			WithUserMessage("The tag is not attached to this note")

	ErrSuggestionNotFound = New(ErrTypeStore, "SUGGESTION_NOT_FOUND", "suggestion not found").
				WithUserMessage("The suggestion is no longer available")

	// Validation errors
	ErrEmptyID = New(ErrTypeValidation, "EMPTY_ID", "id must not be empty").
			WithUserMessage("A valid identifier is required")

	ErrTitleTooLong = New(ErrTypeValidation, "TITLE_TOO_LONG", "title exceeds maximum length").
			WithUserMessage("The title is too long")

	ErrInvalidTagColor = New(ErrTypeValidation, "INVALID_TAG_COLOR", "tag color not in palette").
				WithUserMessage("Pick one of the available tag colors")

	ErrEmptyTagName = New(ErrTypeValidation, "EMPTY_TAG_NAME", "tag name must not be empty").
			WithUserMessage("Tags need a name")

	ErrEmptyFolderName = New(ErrTypeValidation, "EMPTY_FOLDER_NAME", "folder name must not be empty").
				WithUserMessage("Folders need a name")

	// Persistence errors
	ErrSnapshotSaveFailed = New(ErrTypePersistence, "SNAPSHOT_SAVE_FAILED", "failed to save snapshot").
				WithUserMessage("Your changes are kept in memory but could not be saved to disk").
				WithRetryable(true)

	ErrSnapshotLoadFailed = New(ErrTypePersistence, "SNAPSHOT_LOAD_FAILED", "failed to load snapshot").
				WithUserMessage("Stored notes could not be loaded")

	// Configuration errors
	ErrConfigLoadFailed = New(ErrTypeConfig, "CONFIG_LOAD_FAILED", "failed to load configuration").
				WithUserMessage("Configuration file could not be loaded. Using defaults")
)

// RetryHandler provides retry functionality for operations
type RetryHandler struct {
	MaxAttempts int
	OnRetry     func(attempt int, err error)
}

// NewRetryHandler creates a new retry handler
func NewRetryHandler(maxAttempts int) *RetryHandler {
	return &RetryHandler{MaxAttempts: maxAttempts}
}

// Execute runs a function with retry logic
func (r *RetryHandler) Execute(fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry non-retryable errors
		if appErr, ok := err.(*AppError); ok && !appErr.IsRetryable() {
			return err
		}

		if attempt < r.MaxAttempts && r.OnRetry != nil {
			r.OnRetry(attempt, err)
		}
	}

	return Wrap(lastErr, ErrTypeApp, "MAX_RETRIES_EXCEEDED",
		fmt.Sprintf("operation failed after %d attempts", r.MaxAttempts)).
		WithUserMessage("Operation failed after multiple attempts. Please try again later")
}
