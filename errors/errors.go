package errors

import (
	"fmt"
)

// AppError is the unified emulator error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Category returns the category of the error's code.
func (e *AppError) Category() Category { return CategoryOf(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Construction errors ---

// InvalidValueType creates an error for a payload whose Go type has no Value tag.
func InvalidValueType(payload any) *AppError {
	return &AppError{
		Code: ErrCodeInvalidValueType, Message: fmt.Sprintf("unsupported value payload of type %T", payload),
		Details: map[string]any{"type": fmt.Sprintf("%T", payload)},
	}
}

// EmptyValue creates an error for an operation that received no usable value.
func EmptyValue(operation string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyValue, Message: fmt.Sprintf("%s requires a non-empty value", operation),
		Details: map[string]any{"operation": operation},
	}
}

// UnsupportedFilterType creates an error for an unknown filter variant.
func UnsupportedFilterType(filterType any) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedFilterType, Message: fmt.Sprintf("unsupported filter type %v", filterType),
		Details: map[string]any{"filter_type": fmt.Sprint(filterType)},
	}
}

// UnsupportedSourceType creates an error for an unknown source variant.
func UnsupportedSourceType(sourceType any) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedSourceType, Message: fmt.Sprintf("unsupported source type %v", sourceType),
		Details: map[string]any{"source_type": fmt.Sprint(sourceType)},
	}
}

// --- Bounds/argument errors ---

// InvalidIndex creates an error for an index outside [0, count).
func InvalidIndex(collection string, id, count int) *AppError {
	return &AppError{
		Code: ErrCodeInvalidIndex, Message: fmt.Sprintf("%s index %d out of range [0, %d)", collection, id, count),
		Details: map[string]any{"collection": collection, "id": id, "count": count},
	}
}

// InvalidArgument creates an error for a missing or malformed argument.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid argument %s: %s", field, reason),
		Details: details,
	}
}

// Validation creates an argument error from an aggregated validation message.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidArgument, Message: message}
}

// NotFound creates an error for a missing keyed entry.
func NotFound(resource, key string) *AppError {
	details := map[string]any{"resource": resource}
	if key != "" {
		details["key"] = key
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", resource, key),
		Details: details,
	}
}

// InvalidConfig creates an error for a bootstrap configuration that failed validation.
func InvalidConfig(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: "emulator configuration is invalid",
		Cause: cause,
	}
}

// --- Module errors ---

// ModuleFailure wraps an error returned (or a panic raised) by a module callback.
func ModuleFailure(phase string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeModuleFailure, Message: fmt.Sprintf("module failed during %s", phase),
		Details: map[string]any{"phase": phase}, Cause: cause,
	}
}

// --- Invariant errors ---

// NonEmptyContainer creates an error for removing a container that still owns children.
func NonEmptyContainer(name string, configurations, containers int) *AppError {
	return &AppError{
		Code: ErrCodeNonEmptyContainer,
		Message: fmt.Sprintf("container %q still owns %d configuration(s) and %d container(s)",
			name, configurations, containers),
		Details: map[string]any{"container": name, "configurations": configurations, "containers": containers},
	}
}
