package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
}

func TestAppError_InvalidIndex_Success(t *testing.T) {
	err := InvalidIndex("execution context", 3, 2)
	if err.Code != ErrCodeInvalidIndex {
		t.Errorf("expected INVALID_INDEX, got %s", err.Code)
	}
	if err.Details["id"] != 3 {
		t.Errorf("expected id=3, got %v", err.Details["id"])
	}
	if err.Details["count"] != 2 {
		t.Errorf("expected count=2, got %v", err.Details["count"])
	}
	if !strings.Contains(err.Error(), "[0, 2)") {
		t.Errorf("expected range in message, got %q", err.Error())
	}
}

func TestAppError_NotFound_EmptyKey(t *testing.T) {
	err := NotFound("variable", "")
	if _, ok := err.Details["key"]; ok {
		t.Error("expected no 'key' key in details when key is empty")
	}
}

func TestAppError_InvalidValueType_ReportsGoType(t *testing.T) {
	err := InvalidValueType(struct{}{})
	if err.Details["type"] != "struct {}" {
		t.Errorf("expected type detail 'struct {}', got %v", err.Details["type"])
	}
}

func TestAppError_NonEmptyContainer_Details(t *testing.T) {
	err := NonEmptyContainer("root", 1, 2)
	if err.Details["configurations"] != 1 || err.Details["containers"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
	if err.Category() != CategoryInvariant {
		t.Errorf("expected invariant category, got %s", err.Category())
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ModuleFailure("execute", nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("setting", "port").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["resource"] != "setting" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := InvalidConfig(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	err2 := EmptyValue("addMessage")
	if err2.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestCategoryOf_Table(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		category Category
	}{
		{"InvalidValueType", InvalidValueType(1i), CategoryConstruction},
		{"EmptyValue", EmptyValue("add"), CategoryConstruction},
		{"UnsupportedFilterType", UnsupportedFilterType(99), CategoryConstruction},
		{"UnsupportedSourceType", UnsupportedSourceType(99), CategoryConstruction},
		{"InvalidIndex", InvalidIndex("source", -1, 0), CategoryArgument},
		{"InvalidArgument", InvalidArgument("managedIds", "must not be empty"), CategoryArgument},
		{"NotFound", NotFound("variable", "x"), CategoryArgument},
		{"Validation", Validation("name: is required"), CategoryArgument},
		{"ModuleFailure", ModuleFailure("start", nil), CategoryModule},
		{"NonEmptyContainer", NonEmptyContainer("c", 0, 1), CategoryInvariant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Category(); got != tc.category {
				t.Errorf("expected category %s, got %s", tc.category, got)
			}
		})
	}
}

func TestIsRecoverable(t *testing.T) {
	if !IsRecoverable(ErrCodeModuleFailure) {
		t.Error("module failures should be recoverable")
	}
	for _, code := range []ErrorCode{ErrCodeInvalidIndex, ErrCodeNonEmptyContainer, ErrCodeInvalidValueType} {
		if IsRecoverable(code) {
			t.Errorf("expected %s to NOT be recoverable", code)
		}
	}
}

func TestIs_MatchesWrappedCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", InvalidIndex("container", 5, 1))
	if !Is(wrapped, ErrCodeInvalidIndex) {
		t.Error("expected Is to match a wrapped AppError")
	}
	if Is(wrapped, ErrCodeNotFound) {
		t.Error("expected Is to reject a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidIndex) {
		t.Error("expected Is to reject a plain error")
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	appErr := EmptyValue("addLog")
	wrapped := fmt.Errorf("wrap: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeEmptyValue {
		t.Errorf("expected EMPTY_VALUE, got %s", got.Code)
	}

	_, ok = AsAppError(fmt.Errorf("not an app error"))
	if ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = NotFound("test", "1")
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Error("stderrors.As should work with AppError")
	}
}
