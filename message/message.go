package message

import (
	"time"

	"github.com/kbukum/smcemu/value"
)

// Message is a typed, timestamped value.
type Message struct {
	typ   Type
	value value.Value
	date  time.Time
}

// New creates a message stamped with the current time.
func New(t Type, v value.Value) Message {
	return Message{typ: t, value: v, date: time.Now()}
}

// NewAt creates a message with an explicit timestamp, used to tag a batch of
// messages with one instant.
func NewAt(t Type, v value.Value, date time.Time) Message {
	return Message{typ: t, value: v, date: date}
}

// Of creates a message from a raw payload.
func Of(t Type, payload any) (Message, error) {
	v, err := value.New(payload)
	if err != nil {
		return Message{}, err
	}
	return New(t, v), nil
}

// Type returns the message type.
func (m Message) Type() Type { return m.typ }

// Value returns the carried value.
func (m Message) Value() value.Value { return m.value }

// Date returns the creation timestamp.
func (m Message) Date() time.Time { return m.date }

// ValueType returns the tag of the carried value.
func (m Message) ValueType() value.Type { return m.value.Type() }

// String formats the message as "TYPE value".
func (m Message) String() string {
	return string(m.typ) + " " + m.value.String()
}

type messageDocument struct {
	Type      string    `yaml:"type"`
	ValueType string    `yaml:"value_type"`
	Value     string    `yaml:"value"`
	Date      time.Time `yaml:"date"`
}

// MarshalYAML renders the message for audit-log reports.
func (m Message) MarshalYAML() (any, error) {
	return messageDocument{
		Type:      string(m.typ),
		ValueType: m.value.Type().String(),
		Value:     m.value.String(),
		Date:      m.date,
	}, nil
}
