package message

import (
	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/value"
)

// Slice returns actions[from:to]. A bound of -1 means no slicing on that
// side. Bounds outside the list fail with INVALID_INDEX.
func Slice(actions []Action, from, to int) ([]Action, error) {
	n := len(actions)
	lo, hi := 0, n
	if from != -1 {
		if from < 0 || from > n {
			return nil, errors.InvalidIndex("from", from, n+1)
		}
		lo = from
	}
	if to != -1 {
		if to < lo || to > n {
			return nil, errors.InvalidIndex("to", to, n+1).WithDetail("from", lo)
		}
		hi = to
	}
	return append([]Action(nil), actions[lo:hi]...), nil
}

// ExecuteData keeps the EXECUTE actions and, within each, the DATA messages.
func ExecuteData(actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.typ != ActionExecute {
			continue
		}
		data := make([]Message, 0, len(a.messages))
		for _, m := range a.messages {
			if m.typ == TypeData {
				data = append(data, m)
			}
		}
		out = append(out, Action{typ: a.typ, messages: data})
	}
	return out
}

// Values collects the values of the DATA messages of the given actions.
func Values(actions []Action) []value.Value {
	var out []value.Value
	for _, a := range actions {
		for _, m := range a.messages {
			if m.typ == TypeData {
				out = append(out, m.value)
			}
		}
	}
	return out
}

// IsError is the host's action error predicate. It reports true only when
// the action is present, non-empty and carries no ERROR or ACTION_ERROR
// message; an action that does carry one reports false.
func IsError(a *Action) bool {
	if a == nil || len(a.messages) == 0 {
		return false
	}
	for _, m := range a.messages {
		if m.typ.IsFailure() {
			return false
		}
	}
	return true
}

// LastFailure returns the last ERROR or ACTION_ERROR message of msgs.
func LastFailure(msgs []Message) (Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].typ.IsFailure() {
			return msgs[i], true
		}
	}
	return Message{}, false
}
