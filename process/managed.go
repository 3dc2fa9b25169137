package process

import (
	"context"
	"time"

	"github.com/kbukum/smcemu/control"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/value"
)

type managed struct {
	name    string
	process *Process
	tool    *control.ExecutionTool
}

// Managed adapts p and its execution tool to a flow-control target. The
// values of each run become one EXECUTE input action on source 0; the
// phase output becomes the result action, typed after the command.
func Managed(name string, p *Process, tool *control.ExecutionTool) control.Managed {
	return &managed{name: name, process: p, tool: tool}
}

func (m *managed) Name() string { return m.name }

func (m *managed) Execute(ctx context.Context, t message.CommandType, values []value.Value) message.Action {
	date := time.Now()
	msgs := make([]message.Message, len(values))
	for i, v := range values {
		msgs[i] = message.NewAt(message.TypeData, v, date)
	}
	m.tool.SetInput([][]message.Action{{message.NewAction(message.ActionExecute, msgs...)}})

	var out []message.Message
	switch t {
	case message.CommandStart:
		out = m.process.Start(ctx)
	case message.CommandUpdate:
		out = m.process.Update(ctx)
	case message.CommandStop:
		out = m.process.Stop(ctx)
	default:
		out = m.process.Execute(ctx, m.tool)
	}
	return message.NewAction(t.ActionType(), out...)
}
