package message

// Action is an ordered list of messages produced or consumed in one phase.
type Action struct {
	messages []Message
	typ      ActionType
}

// NewAction creates an action; the message slice is copied.
func NewAction(t ActionType, messages ...Message) Action {
	return Action{typ: t, messages: append([]Message(nil), messages...)}
}

// Type returns the phase of the action.
func (a Action) Type() ActionType { return a.typ }

// Messages returns a copy of the action's messages in insertion order.
func (a Action) Messages() []Message {
	return append([]Message(nil), a.messages...)
}

// Len returns the number of messages.
func (a Action) Len() int { return len(a.messages) }

// MarshalYAML renders the action for audit-log reports.
func (a Action) MarshalYAML() (any, error) {
	return struct {
		Type     string    `yaml:"type"`
		Messages []Message `yaml:"messages"`
	}{Type: string(a.typ), Messages: a.messages}, nil
}

// Command bundles several actions for one source.
type Command struct {
	actions []Action
	typ     CommandType
}

// NewCommand creates a command; the action slice is copied.
func NewCommand(t CommandType, actions ...Action) Command {
	return Command{typ: t, actions: append([]Action(nil), actions...)}
}

// Type returns the command type.
func (c Command) Type() CommandType { return c.typ }

// Actions returns a copy of the command's actions.
func (c Command) Actions() []Action {
	return append([]Action(nil), c.actions...)
}
