package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors
const (
	// ErrCodeInvalidValueType indicates a payload that cannot be held by a Value.
	ErrCodeInvalidValueType ErrorCode = "INVALID_VALUE_TYPE"
	// ErrCodeEmptyValue indicates an empty payload where one is required.
	ErrCodeEmptyValue ErrorCode = "EMPTY_VALUE"
	// ErrCodeUnsupportedFilterType indicates an unknown filter variant.
	ErrCodeUnsupportedFilterType ErrorCode = "UNSUPPORTED_FILTER_TYPE"
	// ErrCodeUnsupportedSourceType indicates an unknown source variant.
	ErrCodeUnsupportedSourceType ErrorCode = "UNSUPPORTED_SOURCE_TYPE"
)

// Bounds/argument errors
const (
	// ErrCodeInvalidIndex indicates an index outside [0, count).
	ErrCodeInvalidIndex ErrorCode = "INVALID_INDEX"
	// ErrCodeInvalidArgument indicates a missing or malformed argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates a missing setting, variable or named entry.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidConfig indicates a bootstrap configuration that failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Module errors
const (
	// ErrCodeModuleFailure indicates a module callback that returned an error or panicked.
	ErrCodeModuleFailure ErrorCode = "MODULE_FAILURE"
)

// Invariant errors
const (
	// ErrCodeNonEmptyContainer indicates removal of a container that still owns children.
	ErrCodeNonEmptyContainer ErrorCode = "NON_EMPTY_CONTAINER"
)

// Category groups error codes by how the caller is expected to react.
type Category string

const (
	CategoryConstruction Category = "construction"
	CategoryArgument     Category = "argument"
	CategoryModule       Category = "module"
	CategoryInvariant    Category = "invariant"
)

var codeCategories = map[ErrorCode]Category{
	ErrCodeInvalidValueType:      CategoryConstruction,
	ErrCodeEmptyValue:            CategoryConstruction,
	ErrCodeUnsupportedFilterType: CategoryConstruction,
	ErrCodeUnsupportedSourceType: CategoryConstruction,
	ErrCodeInvalidIndex:          CategoryArgument,
	ErrCodeInvalidArgument:       CategoryArgument,
	ErrCodeNotFound:              CategoryArgument,
	ErrCodeInvalidConfig:         CategoryArgument,
	ErrCodeModuleFailure:         CategoryModule,
	ErrCodeNonEmptyContainer:     CategoryInvariant,
}

// CategoryOf returns the category of an error code. Unknown codes are
// reported as argument errors.
func CategoryOf(code ErrorCode) Category {
	if c, ok := codeCategories[code]; ok {
		return c
	}
	return CategoryArgument
}

// IsRecoverable returns true if errors with this code are contained rather
// than surfaced to the caller.
func IsRecoverable(code ErrorCode) bool {
	return CategoryOf(code) == CategoryModule
}
