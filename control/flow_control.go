package control

import (
	"context"
	"slices"
	"strconv"

	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/message"
	"github.com/kbukum/smcemu/observability"
	"github.com/kbukum/smcemu/validation"
	"github.com/kbukum/smcemu/value"
)

// Managed is a flow-control target: an execution context run on behalf of
// the current one.
type Managed interface {
	Name() string
	Execute(ctx context.Context, t message.CommandType, values []value.Value) message.Action
}

var executeNowTypes = map[message.CommandType]message.Type{
	message.CommandStart:   message.TypeFlowExecuteNowStart,
	message.CommandExecute: message.TypeFlowExecuteNowExecute,
	message.CommandUpdate:  message.TypeFlowExecuteNowUpdate,
	message.CommandStop:    message.TypeFlowExecuteNowStop,
}

var executeParallelTypes = map[message.CommandType]message.Type{
	message.CommandStart:   message.TypeFlowExecuteParallelStart,
	message.CommandExecute: message.TypeFlowExecuteParallelExecute,
	message.CommandUpdate:  message.TypeFlowExecuteParallelUpdate,
	message.CommandStop:    message.TypeFlowExecuteParallelStop,
}

// AddManaged registers a target and returns its managed id.
func (t *ExecutionTool) AddManaged(m Managed) int {
	t.managed = append(t.managed, m)
	t.results = append(t.results, nil)
	return len(t.managed) - 1
}

// CountManagedExecutionContexts returns the number of targets.
func (t *ExecutionTool) CountManagedExecutionContexts() int { return len(t.managed) }

// ManagedExecutionContext returns the target at id.
func (t *ExecutionTool) ManagedExecutionContext(id int) (Managed, error) {
	if err := validation.Index("managed execution context", id, len(t.managed)); err != nil {
		return nil, err
	}
	return t.managed[id], nil
}

// ExecuteNow runs one target synchronously and overwrites its result slot.
func (t *ExecutionTool) ExecuteNow(ctx context.Context, typ message.CommandType, managedID int, payloads ...any) error {
	err := validation.New().
		Custom(typ.Valid(), "command_type", "must be START, EXECUTE, UPDATE or STOP").
		InRange("managed_id", managedID, len(t.managed)).
		Validate()
	if err != nil {
		return err
	}
	values, err := value.FromSlice(payloads)
	if err != nil {
		return err
	}

	t.Record(executeNowTypes[typ], strconv.Itoa(managedID)+" "+t.managed[managedID].Name())

	ctx, span := observability.StartSpan(ctx, observability.SpanFlowControl)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrToolID, t.id)
	observability.SetSpanAttribute(ctx, observability.AttrCommandType, string(typ))
	observability.SetSpanAttribute(ctx, observability.AttrManagedIDs, []int{managedID})

	t.run(ctx, typ, managedID, values)
	if t.metrics != nil {
		t.metrics.RecordFlowControl(ctx, t.Configuration().Name(), "now", string(typ), 1)
	}
	return nil
}

// ExecuteParallel appends managedIDs as a new batch, runs every target and
// returns the batch's thread id. Targets run one after another in the given
// order; each overwrites its own result slot.
func (t *ExecutionTool) ExecuteParallel(ctx context.Context, typ message.CommandType, managedIDs []int, payloads []any, waitingTacts, maxWorkInterval int) (int, error) {
	v := validation.New().
		Custom(typ.Valid(), "command_type", "must be START, EXECUTE, UPDATE or STOP").
		NotEmpty("managed_ids", len(managedIDs)).
		Min("waiting_tacts", waitingTacts, 0).
		Min("max_work_interval", maxWorkInterval, -1)
	for _, id := range managedIDs {
		v.InRange("managed_ids", id, len(t.managed))
	}
	if err := v.Validate(); err != nil {
		return 0, err
	}
	values, err := value.FromSlice(payloads)
	if err != nil {
		return 0, err
	}

	for _, id := range managedIDs {
		t.Record(executeParallelTypes[typ], strconv.Itoa(id)+" "+t.managed[id].Name())
	}
	t.Record(message.TypeFlowExecuteParallelWaitingTacts, strconv.Itoa(waitingTacts))

	t.threads = append(t.threads, slices.Clone(managedIDs))
	threadID := len(t.threads) - 1

	ctx, span := observability.StartSpan(ctx, observability.SpanFlowControl)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrToolID, t.id)
	observability.SetSpanAttribute(ctx, observability.AttrCommandType, string(typ))
	observability.SetSpanAttribute(ctx, observability.AttrManagedIDs, managedIDs)
	observability.SetSpanAttribute(ctx, observability.AttrThreadID, threadID)

	for _, id := range managedIDs {
		t.run(ctx, typ, id, values)
	}
	if t.metrics != nil {
		t.metrics.RecordFlowControl(ctx, t.Configuration().Name(), "parallel", string(typ), len(managedIDs))
	}
	return threadID, nil
}

func (t *ExecutionTool) run(ctx context.Context, typ message.CommandType, managedID int, values []value.Value) {
	target := t.managed[managedID]
	result := target.Execute(ctx, typ, values)
	t.results[managedID] = &result
	t.log.WithContext(ctx).Debug("managed execution finished", logger.Fields(
		"managed_id", managedID,
		"managed", target.Name(),
		"command_type", string(typ),
		"messages", result.Len(),
	))
}

// IsThreadActive is always false: runs complete before the call returns.
func (t *ExecutionTool) IsThreadActive(threadID int) bool { return false }

// CountThreads returns the number of unreleased batches.
func (t *ExecutionTool) CountThreads() int { return len(t.threads) }

// Thread returns the managed ids of the batch at threadID.
func (t *ExecutionTool) Thread(threadID int) ([]int, error) {
	if err := validation.Index("thread", threadID, len(t.threads)); err != nil {
		return nil, err
	}
	return slices.Clone(t.threads[threadID]), nil
}

// GetMessagesFromExecuted returns the last result of managedID reduced to
// EXECUTE/DATA. Results are kept per target, not per batch, so threadID
// does not select among them.
func (t *ExecutionTool) GetMessagesFromExecuted(threadID, managedID int) ([]message.Action, error) {
	result, err := t.result(managedID)
	if err != nil || result == nil {
		return nil, err
	}
	return message.ExecuteData([]message.Action{*result}), nil
}

// GetCommandsFromExecuted returns the last result of managedID wrapped in
// one EXECUTE command.
func (t *ExecutionTool) GetCommandsFromExecuted(threadID, managedID int) ([]message.Command, error) {
	result, err := t.result(managedID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return []message.Command{message.NewCommand(message.CommandExecute)}, nil
	}
	return []message.Command{message.NewCommand(message.CommandExecute, *result)}, nil
}

func (t *ExecutionTool) result(managedID int) (*message.Action, error) {
	if err := validation.Index("managed execution context", managedID, len(t.managed)); err != nil {
		return nil, err
	}
	return t.results[managedID], nil
}

// ReleaseThread removes the batch at threadID; later batches shift down by
// one.
func (t *ExecutionTool) ReleaseThread(threadID int) error {
	if err := validation.Index("thread", threadID, len(t.threads)); err != nil {
		return err
	}
	t.threads = slices.Delete(t.threads, threadID, threadID+1)
	return nil
}

// ReleaseThreadCache behaves like ReleaseThread.
func (t *ExecutionTool) ReleaseThreadCache(threadID int) error {
	return t.ReleaseThread(threadID)
}
