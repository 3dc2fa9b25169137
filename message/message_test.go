package message

import (
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/value"
)

func data(t *testing.T, payload any) Message {
	t.Helper()
	m, err := Of(TypeData, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestOf_RejectsUnsupportedPayload(t *testing.T) {
	if _, err := Of(TypeData, struct{}{}); !errors.Is(err, errors.ErrCodeInvalidValueType) {
		t.Errorf("expected INVALID_VALUE_TYPE, got %v", err)
	}
}

func TestNewAt_KeepsTimestamp(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewAt(TypeLog, value.MustNew("x"), at)
	if !m.Date().Equal(at) {
		t.Errorf("expected %v, got %v", at, m.Date())
	}
	if m.ValueType() != value.TypeString {
		t.Errorf("expected STRING, got %s", m.ValueType())
	}
}

func TestType_Classification(t *testing.T) {
	tests := []struct {
		typ     Type
		control bool
		failure bool
	}{
		{TypeData, false, false},
		{TypeError, false, true},
		{TypeActionError, false, true},
		{TypeContainerCreate, true, false},
		{TypeFlowExecuteParallelWaitingTacts, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if tt.typ.IsControl() != tt.control {
				t.Errorf("IsControl = %v, want %v", tt.typ.IsControl(), tt.control)
			}
			if tt.typ.IsFailure() != tt.failure {
				t.Errorf("IsFailure = %v, want %v", tt.typ.IsFailure(), tt.failure)
			}
		})
	}
}

func TestAction_CopiesMessages(t *testing.T) {
	msgs := []Message{data(t, "a")}
	a := NewAction(ActionExecute, msgs...)
	msgs[0] = data(t, "b")
	got := a.Messages()
	if s, _ := got[0].Value().AsString(); s != "a" {
		t.Errorf("expected action to keep its own copy, got %q", s)
	}
	got[0] = data(t, "c")
	if s, _ := a.Messages()[0].Value().AsString(); s != "a" {
		t.Errorf("expected Messages to return a copy, got %q", s)
	}
}

func TestSlice(t *testing.T) {
	actions := []Action{
		NewAction(ActionExecute, data(t, 0)),
		NewAction(ActionExecute, data(t, 1)),
		NewAction(ActionExecute, data(t, 2)),
	}
	tests := []struct {
		name    string
		from    int
		to      int
		want    int
		wantErr bool
	}{
		{"no slicing", -1, -1, 3, false},
		{"from only", 1, -1, 2, false},
		{"to only", -1, 2, 2, false},
		{"range", 1, 2, 1, false},
		{"empty range", 3, 3, 0, false},
		{"from beyond", 4, -1, 0, true},
		{"to before from", 2, 1, 0, true},
		{"negative", -2, -1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slice(actions, tt.from, tt.to)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidIndex) {
					t.Errorf("expected INVALID_INDEX, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("expected %d actions, got %d", tt.want, len(got))
			}
		})
	}
}

func TestExecuteData_FiltersPhaseAndType(t *testing.T) {
	logMsg, _ := Of(TypeLog, "log")
	actions := []Action{
		NewAction(ActionStart, data(t, "start")),
		NewAction(ActionExecute, data(t, "a"), logMsg, data(t, "b")),
		NewAction(ActionStop, data(t, "stop")),
	}
	got := ExecuteData(actions)
	if len(got) != 1 {
		t.Fatalf("expected 1 action, got %d", len(got))
	}
	if got[0].Len() != 2 {
		t.Errorf("expected 2 DATA messages, got %d", got[0].Len())
	}
	values := Values(got)
	if len(values) != 2 {
		t.Fatalf("expected 2 values, got %d", len(values))
	}
	if s, _ := values[1].AsString(); s != "b" {
		t.Errorf("expected order preserved, got %q", s)
	}
}

func TestIsError_LiteralContract(t *testing.T) {
	errMsg, _ := Of(TypeError, "boom")
	actionErr, _ := Of(TypeActionError, "boom")
	clean := NewAction(ActionExecute, data(t, "ok"))
	withError := NewAction(ActionExecute, data(t, "ok"), errMsg)
	withActionError := NewAction(ActionExecute, actionErr)
	empty := NewAction(ActionExecute)

	tests := []struct {
		name   string
		action *Action
		want   bool
	}{
		{"nil action", nil, false},
		{"empty action", &empty, false},
		{"clean action", &clean, true},
		{"error message present", &withError, false},
		{"action error present", &withActionError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsError(tt.action); got != tt.want {
				t.Errorf("IsError = %v, want %v", got, tt.want)
			}
		})
	}
	if _, ok := LastFailure(clean.Messages()); ok {
		t.Error("LastFailure should find nothing in a clean action")
	}
	if m, ok := LastFailure(withActionError.Messages()); !ok || m.Type() != TypeActionError {
		t.Errorf("LastFailure = %v, %v", m, ok)
	}
}

func TestCommandType_Valid(t *testing.T) {
	if _, ok := ParseCommandType("EXECUTE"); !ok {
		t.Error("expected EXECUTE to be valid")
	}
	if CommandType("").Valid() {
		t.Error("expected empty command type to be invalid")
	}
	if CommandUpdate.ActionType() != ActionUpdate {
		t.Error("expected UPDATE to map to the UPDATE phase")
	}
}

func TestMessage_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(NewAction(ActionExecute, data(t, 42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	for _, want := range []string{"type: EXECUTE", "type: DATA", "value_type: INTEGER", `value: "42"`} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in:\n%s", want, text)
		}
	}
}
