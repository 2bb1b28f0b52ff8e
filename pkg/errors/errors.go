package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryFormat        ErrorCategory = "format"
	CategoryTemplate      ErrorCategory = "template"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileCorrupted  ErrorCode = "file_corrupted"

	// Format errors
	CodeUnsupportedFormat ErrorCode = "unsupported_format"
	CodeEmptyDocument     ErrorCode = "empty_document"
	CodeEncodingError     ErrorCode = "encoding_error"

	// Template errors
	CodeInvalidTemplate   ErrorCode = "invalid_template"
	CodeDuplicateTemplate ErrorCode = "duplicate_template"
	CodeTemplateNotFound  ErrorCode = "template_not_found"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// IngestError is the base error type for all application errors.
// Malformed statement content never produces one of these: the ingestion
// pipeline degrades to zeros and empty fields instead. IngestError covers
// the shell around the pipeline (files, template registries, configuration).
type IngestError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *IngestError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *IngestError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *IngestError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryFormat:
		return 3
	case CategoryTemplate:
		return 4
	case CategoryConfiguration:
		return 5
	case CategoryInternal:
		return 6
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *IngestError) WithContext(key string, value interface{}) *IngestError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *IngestError) WithSuggestion(suggestion string) *IngestError {
	e.Suggestion = suggestion
	return e
}

// New creates a new IngestError
func New(category ErrorCategory, code ErrorCode, message string) *IngestError {
	return &IngestError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with IngestError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *IngestError {
	if err == nil {
		return nil
	}

	return &IngestError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *IngestError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	case CodeFileCorrupted:
		message = fmt.Sprintf("file appears to be corrupted: %s", path)
		suggestion = "verify the file integrity and try using a fresh export"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *IngestError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// FormatError creates an error about the shape of a statement document
func FormatError(code ErrorCode, file string, err error) *IngestError {
	var message string
	var suggestion string

	switch code {
	case CodeUnsupportedFormat:
		message = fmt.Sprintf("unsupported statement format: %s", file)
		suggestion = "only CSV and OFX/QFX exports are supported"
	case CodeEmptyDocument:
		message = fmt.Sprintf("statement document is empty: %s", file)
		suggestion = "ensure the export contains a header row and data rows"
	case CodeEncodingError:
		message = fmt.Sprintf("encoding error in file %s", file)
		suggestion = "ensure the file is saved in UTF-8 encoding"
	default:
		message = fmt.Sprintf("format error in file %s", file)
		suggestion = "check the file format and data integrity"
	}

	var result *IngestError
	if err != nil {
		result = Wrap(err, CategoryFormat, code, message)
	} else {
		result = New(CategoryFormat, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file", file)
}

// TemplateError creates a template-registry error
func TemplateError(code ErrorCode, templateID string, err error) *IngestError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidTemplate:
		message = fmt.Sprintf("invalid statement template: %s", templateID)
		suggestion = "check the template definition for missing id, name or aliases"
	case CodeDuplicateTemplate:
		message = fmt.Sprintf("duplicate statement template id: %s", templateID)
		suggestion = "give each template a unique id"
	case CodeTemplateNotFound:
		message = fmt.Sprintf("statement template not found: %s", templateID)
		suggestion = "use 'templates list' to see the available template ids"
	default:
		message = fmt.Sprintf("template error: %s", templateID)
		suggestion = "check the template registry and try again"
	}

	var result *IngestError
	if err != nil {
		result = Wrap(err, CategoryTemplate, code, message)
	} else {
		result = New(CategoryTemplate, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("template_id", templateID)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *IngestError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidConfig:
		message = fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
		suggestion = "check the configuration documentation for valid values"
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration: %s", setting)
		suggestion = "provide this configuration setting or use a config file"
	default:
		message = fmt.Sprintf("configuration error: %s", setting)
		suggestion = "check your configuration and try again"
	}

	var result *IngestError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, code, message)
	} else {
		result = New(CategoryConfiguration, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("setting", setting).
		WithContext("value", value)
}

// InternalError creates an internal error
func InternalError(operation string, err error) *IngestError {
	message := fmt.Sprintf("unexpected error during %s", operation)

	var result *IngestError
	if err != nil {
		result = Wrap(err, CategoryInternal, CodeUnexpectedError, message)
	} else {
		result = New(CategoryInternal, CodeUnexpectedError, message)
	}

	return result.
		WithSuggestion("this is likely a bug, please report it").
		WithContext("operation", operation)
}

// IsIngestError checks if an error is an IngestError
func IsIngestError(err error) bool {
	_, ok := err.(*IngestError)
	return ok
}

// AsIngestError extracts an IngestError from an error chain
func AsIngestError(err error) (*IngestError, bool) {
	for err != nil {
		if ie, ok := err.(*IngestError); ok {
			return ie, true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return nil, false
}

// WrapIfNeeded wraps an error if it's not already an IngestError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *IngestError {
	if err == nil {
		return nil
	}
	if ie, ok := AsIngestError(err); ok {
		return ie
	}
	return Wrap(err, category, code, message)
}
