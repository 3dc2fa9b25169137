package process

import (
	"context"

	"github.com/kbukum/smcemu/control"
)

// Module is the hosted business logic. Returned errors and panics are
// contained by the Process.
type Module interface {
	Start(ctx context.Context, cfg *control.ConfigurationTool) error
	Process(ctx context.Context, cfg *control.ConfigurationTool, tool *control.ExecutionTool) error
	Update(ctx context.Context, cfg *control.ConfigurationTool) error
	Stop(ctx context.Context, cfg *control.ConfigurationTool) error
}
