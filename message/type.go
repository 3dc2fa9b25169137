package message

import "strings"

// Type classifies a Message.
type Type string

const (
	TypeData  Type = "DATA"
	TypeError Type = "ERROR"
	TypeLog   Type = "LOG"

	TypeActionStart Type = "ACTION_START"
	TypeActionStop  Type = "ACTION_STOP"
	TypeActionError Type = "ACTION_ERROR"

	TypeConfigurationCreate           Type = "CONFIGURATION_CONTROL_CONFIGURATION_CREATE"
	TypeConfigurationUpdate           Type = "CONFIGURATION_CONTROL_CONFIGURATION_UPDATE"
	TypeConfigurationRemove           Type = "CONFIGURATION_CONTROL_CONFIGURATION_REMOVE"
	TypeConfigurationSettingUpdate    Type = "CONFIGURATION_CONTROL_CONFIGURATION_SETTING_UPDATE"
	TypeConfigurationVariableUpdate   Type = "CONFIGURATION_CONTROL_CONFIGURATION_VARIABLE_UPDATE"
	TypeConfigurationVariableRemove   Type = "CONFIGURATION_CONTROL_CONFIGURATION_VARIABLE_REMOVE"
	TypeContainerCreate               Type = "CONFIGURATION_CONTROL_CONTAINER_CREATE"
	TypeContainerRemove               Type = "CONFIGURATION_CONTROL_CONTAINER_REMOVE"
	TypeExecutionContextCreate        Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_CREATE"
	TypeExecutionContextUpdate        Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_UPDATE"
	TypeExecutionContextRemove        Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_REMOVE"
	TypeSourceCreate                  Type = "CONFIGURATION_CONTROL_SOURCE_CONTEXT_CREATE"
	TypeSourceUpdate                  Type = "CONFIGURATION_CONTROL_SOURCE_CONTEXT_UPDATE"
	TypeSourceRemove                  Type = "CONFIGURATION_CONTROL_SOURCE_CONTEXT_REMOVE"
	TypeFilterCreate                  Type = "CONFIGURATION_CONTROL_SOURCE_CONTEXT_FILTER_CREATE"
	TypeFilterUpdate                  Type = "CONFIGURATION_CONTROL_SOURCE_CONTEXT_FILTER_UPDATE"
	TypeFilterRemove                  Type = "CONFIGURATION_CONTROL_SOURCE_CONTEXT_FILTER_REMOVE"
	TypeManagedExecutionContextAdd    Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_MANAGED_CREATE"
	TypeManagedExecutionContextRemove Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_MANAGED_REMOVE"
	TypeManagedConfigurationAdd       Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_MANAGED_CONFIGURATION_CREATE"
	TypeManagedConfigurationRemove    Type = "CONFIGURATION_CONTROL_EXECUTION_CONTEXT_MANAGED_CONFIGURATION_REMOVE"

	TypeFlowExecuteNowStart   Type = "FLOW_CONTROL_EXECUTE_NOW_START"
	TypeFlowExecuteNowExecute Type = "FLOW_CONTROL_EXECUTE_NOW_EXECUTE"
	TypeFlowExecuteNowUpdate  Type = "FLOW_CONTROL_EXECUTE_NOW_UPDATE"
	TypeFlowExecuteNowStop    Type = "FLOW_CONTROL_EXECUTE_NOW_STOP"

	TypeFlowExecuteParallelStart        Type = "FLOW_CONTROL_EXECUTE_PARALLEL_START"
	TypeFlowExecuteParallelExecute      Type = "FLOW_CONTROL_EXECUTE_PARALLEL_EXECUTE"
	TypeFlowExecuteParallelUpdate       Type = "FLOW_CONTROL_EXECUTE_PARALLEL_UPDATE"
	TypeFlowExecuteParallelStop         Type = "FLOW_CONTROL_EXECUTE_PARALLEL_STOP"
	TypeFlowExecuteParallelWaitingTacts Type = "FLOW_CONTROL_EXECUTE_PARALLEL_WAITING_TACTS"
)

// IsControl reports whether t records a configuration or flow control event.
func (t Type) IsControl() bool {
	return strings.HasPrefix(string(t), "CONFIGURATION_CONTROL_") ||
		strings.HasPrefix(string(t), "FLOW_CONTROL_")
}

// IsFailure reports whether t marks an error emitted by a module or the host.
func (t Type) IsFailure() bool {
	return t == TypeError || t == TypeActionError
}

// ActionType is the lifecycle phase an Action belongs to.
type ActionType string

const (
	ActionStart   ActionType = "START"
	ActionExecute ActionType = "EXECUTE"
	ActionUpdate  ActionType = "UPDATE"
	ActionStop    ActionType = "STOP"
)

// Valid reports whether a is a declared phase.
func (a ActionType) Valid() bool {
	switch a {
	case ActionStart, ActionExecute, ActionUpdate, ActionStop:
		return true
	}
	return false
}

// CommandType mirrors ActionType for bundles of actions.
type CommandType string

const (
	CommandStart   CommandType = "START"
	CommandExecute CommandType = "EXECUTE"
	CommandUpdate  CommandType = "UPDATE"
	CommandStop    CommandType = "STOP"
)

// Valid reports whether c is a declared command type.
func (c CommandType) Valid() bool {
	return ActionType(c).Valid()
}

// ActionType returns the phase the command drives.
func (c CommandType) ActionType() ActionType {
	return ActionType(c)
}

// ParseCommandType resolves a command type by name.
func ParseCommandType(name string) (CommandType, bool) {
	c := CommandType(name)
	return c, c.Valid()
}
