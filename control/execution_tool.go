package control

import (
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/smcemu/errors"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/observability"
	"github.com/kbukum/smcemu/topology"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// ExecutionTool is the execution-context handle passed to module code.
type ExecutionTool struct {
	id      string
	ec      *topology.ExecutionContext
	input   [][]message.Action
	output  []message.Message
	managed []Managed
	results []*message.Action
	threads [][]int
	log     *logger.Logger
	metrics *observability.PhaseMetrics
}

// Option configures an ExecutionTool.
type Option func(*ExecutionTool)

// WithInput sets the buffered input, one action list per source.
func WithInput(input [][]message.Action) Option {
	return func(t *ExecutionTool) { t.input = cloneInput(input) }
}

// WithManaged registers flow-control targets in managed-id order.
func WithManaged(managed ...Managed) Option {
	return func(t *ExecutionTool) {
		for _, m := range managed {
			t.AddManaged(m)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(t *ExecutionTool) { t.log = l }
}

// WithMetrics records flow-control executions on m.
func WithMetrics(m *observability.PhaseMetrics) Option {
	return func(t *ExecutionTool) { t.metrics = m }
}

// NewExecutionTool creates the handle for ec.
func NewExecutionTool(ec *topology.ExecutionContext, opts ...Option) (*ExecutionTool, error) {
	if err := validation.New().NotNil("execution_context", ec != nil).Validate(); err != nil {
		return nil, err
	}
	t := &ExecutionTool{id: uuid.NewString(), ec: ec}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.Get("execution-tool")
	} else {
		t.log = t.log.WithComponent("execution-tool")
	}
	t.log = t.log.WithFields(logger.Fields(
		logger.FieldToolID, t.id,
		logger.FieldExecutionContext, ec.Address(),
	))
	return t, nil
}

func cloneInput(input [][]message.Action) [][]message.Action {
	out := make([][]message.Action, len(input))
	for i, actions := range input {
		out[i] = append([]message.Action(nil), actions...)
	}
	return out
}

// ID returns the run identifier of the handle.
func (t *ExecutionTool) ID() string { return t.id }

// ExecutionContext returns the topology node the handle runs against.
func (t *ExecutionTool) ExecutionContext() *topology.ExecutionContext { return t.ec }

// Configuration returns the configuration owning the execution context.
func (t *ExecutionTool) Configuration() *topology.Configuration { return t.ec.Configuration() }

func (t *ExecutionTool) Name() string         { return t.ec.Name() }
func (t *ExecutionTool) Type() string         { return t.ec.Type() }
func (t *ExecutionTool) MaxWorkInterval() int { return t.ec.MaxWorkInterval() }
func (t *ExecutionTool) IsEnable() bool       { return t.ec.IsEnable() }

// IsNeedStop is always false in the emulator.
func (t *ExecutionTool) IsNeedStop() bool { return false }

// Record appends a control message to the output log.
func (t *ExecutionTool) Record(typ message.Type, text string) {
	t.output = append(t.output, message.New(typ, value.MustNew(text)))
	t.log.Trace("control message recorded", logger.Fields(
		logger.FieldMessageType, string(typ),
		"text", text,
	))
}

// Add appends one message of any type. Control tools use it to record
// control-plane events.
func (t *ExecutionTool) Add(typ message.Type, payload any) error {
	m, err := message.Of(typ, payload)
	if err != nil {
		return err
	}
	t.output = append(t.output, m)
	return nil
}

// AddMessage appends one DATA message per payload. Several payloads share
// one timestamp.
func (t *ExecutionTool) AddMessage(payloads ...any) error {
	return t.emit(message.TypeData, "addMessage", payloads)
}

// AddError appends one ERROR message per payload. Several payloads share one
// timestamp.
func (t *ExecutionTool) AddError(payloads ...any) error {
	return t.emit(message.TypeError, "addError", payloads)
}

// AddLog appends one LOG message.
func (t *ExecutionTool) AddLog(payload any) error {
	return t.emit(message.TypeLog, "addLog", []any{payload})
}

func (t *ExecutionTool) emit(typ message.Type, operation string, payloads []any) error {
	if len(payloads) == 0 {
		return errors.EmptyValue(operation)
	}
	values := make([]value.Value, 0, len(payloads))
	for _, p := range payloads {
		if p == nil {
			return errors.EmptyValue(operation)
		}
		v, err := value.New(p)
		if err != nil {
			return err
		}
		if v.IsEmpty() {
			return errors.EmptyValue(operation)
		}
		values = append(values, v)
	}
	date := time.Now()
	for _, v := range values {
		t.output = append(t.output, message.NewAt(typ, v, date))
	}
	return nil
}

// Output returns a copy of the cumulative output log.
func (t *ExecutionTool) Output() []message.Message {
	return append([]message.Message(nil), t.output...)
}

// OutputLen returns the length of the output log.
func (t *ExecutionTool) OutputLen() int { return len(t.output) }

// OutputSince returns the messages appended after the log had mark entries.
func (t *ExecutionTool) OutputSince(mark int) []message.Message {
	if mark < 0 || mark > len(t.output) {
		mark = len(t.output)
	}
	return append([]message.Message(nil), t.output[mark:]...)
}

// SetInput replaces the buffered input.
func (t *ExecutionTool) SetInput(input [][]message.Action) {
	t.input = cloneInput(input)
}

// CountSource returns the number of sources with buffered input.
func (t *ExecutionTool) CountSource() int { return len(t.input) }

// CountCommands returns the number of buffered actions for sourceID.
func (t *ExecutionTool) CountCommands(sourceID int) (int, error) {
	if err := validation.Index("source", sourceID, len(t.input)); err != nil {
		return 0, err
	}
	return len(t.input[sourceID]), nil
}

// GetMessages returns the EXECUTE actions buffered for sourceID, reduced to
// their DATA messages and refined by the filters of the matching source.
// A bound of -1 means no slicing on that side.
func (t *ExecutionTool) GetMessages(sourceID, fromIndex, toIndex int) ([]message.Action, error) {
	if err := validation.Index("source", sourceID, len(t.input)); err != nil {
		return nil, err
	}
	sliced, err := message.Slice(t.input[sourceID], fromIndex, toIndex)
	if err != nil {
		return nil, err
	}
	actions := message.ExecuteData(sliced)
	if src, err := t.ec.Source(sourceID); err == nil && src.CountFilters() > 0 {
		for i, a := range actions {
			actions[i] = message.NewAction(a.Type(), src.Apply(a.Messages())...)
		}
	}
	return actions, nil
}

// GetCommands wraps the raw buffered input for sourceID into one EXECUTE
// command.
func (t *ExecutionTool) GetCommands(sourceID, fromIndex, toIndex int) ([]message.Command, error) {
	if err := validation.Index("source", sourceID, len(t.input)); err != nil {
		return nil, err
	}
	sliced, err := message.Slice(t.input[sourceID], fromIndex, toIndex)
	if err != nil {
		return nil, err
	}
	return []message.Command{message.NewCommand(message.CommandExecute, sliced...)}, nil
}

// IsError applies the host's action error predicate; see message.IsError.
func (t *ExecutionTool) IsError(a *message.Action) bool {
	return message.IsError(a)
}
