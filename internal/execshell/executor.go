package execshell

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

const (
	commandRunnerRequiredMessageConstant = "command runner must be provided"
	defaultInvocationTimeoutConstant     = 30 * time.Second

	commandStartedLogMessageConstant   = "external tool starting"
	commandCompletedLogMessageConstant = "external tool completed"
	commandFailedLogMessageConstant    = "external tool execution failed"
	logFieldToolNameConstant           = "tool_name"
	logFieldArgumentsConstant          = "arguments"
	logFieldExitCodeConstant           = "exit_code"
)

// CommandRunner represents the ability to execute a shell command and capture its result.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ToolLocator resolves tool names against the executable lookup path.
type ToolLocator interface {
	LookupTool(toolName string) (string, error)
}

// OSToolLocator resolves tools using exec.LookPath.
type OSToolLocator struct{}

// LookupTool reports the resolved path for the named executable.
func (OSToolLocator) LookupTool(toolName string) (string, error) {
	return exec.LookPath(toolName)
}

// ShellExecutor coordinates tool lookup, bounded execution, and lifecycle notifications.
type ShellExecutor struct {
	logger            *zap.Logger
	commandRunner     CommandRunner
	toolLocator       ToolLocator
	eventObserver     CommandEventObserver
	invocationTimeout time.Duration
}

// NewShellExecutor constructs a ShellExecutor around the provided runner and observer.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, eventObserver CommandEventObserver) (*ShellExecutor, error) {
	if commandRunner == nil {
		return nil, errors.New(commandRunnerRequiredMessageConstant)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:            logger,
		commandRunner:     commandRunner,
		toolLocator:       OSToolLocator{},
		eventObserver:     eventObserver,
		invocationTimeout: defaultInvocationTimeoutConstant,
	}, nil
}

// SetToolLocator overrides the lookup-path resolver, primarily for tests.
func (executor *ShellExecutor) SetToolLocator(toolLocator ToolLocator) {
	if toolLocator == nil {
		return
	}
	executor.toolLocator = toolLocator
}

// SetInvocationTimeout bounds each tool invocation; non-positive values are ignored.
func (executor *ShellExecutor) SetInvocationTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	executor.invocationTimeout = timeout
}

// Probe reports whether the named tool can be located without invoking it.
func (executor *ShellExecutor) Probe(toolName ToolName) ToolAvailability {
	if _, lookupError := executor.toolLocator.LookupTool(string(toolName)); lookupError != nil {
		return ToolUnavailable
	}
	return ToolAvailable
}

// Execute runs the supplied command with a bounded timeout.
//
// A non-zero exit status or an exceeded timeout is returned as *ToolFailure;
// Execute must only be called for tools that Probe reported as available.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	boundedContext, cancelExecution := context.WithTimeout(executionContext, executor.invocationTimeout)
	defer cancelExecution()

	executor.eventObserver.CommandStarted(command)
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldToolNameConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
	)

	executionResult, executionError := executor.commandRunner.Run(boundedContext, command)
	if executionError != nil {
		if errors.Is(boundedContext.Err(), context.DeadlineExceeded) {
			timeoutFailure := &ToolFailure{Tool: command.Name, Result: executionResult, TimedOut: true}
			executor.eventObserver.CommandExecutionFailed(command, timeoutFailure)
			executor.logger.Warn(commandFailedLogMessageConstant, zap.String(logFieldToolNameConstant, string(command.Name)), zap.Error(timeoutFailure))
			return executionResult, timeoutFailure
		}
		executor.eventObserver.CommandExecutionFailed(command, executionError)
		executor.logger.Error(commandFailedLogMessageConstant, zap.String(logFieldToolNameConstant, string(command.Name)), zap.Error(executionError))
		return ExecutionResult{}, executionError
	}

	// The runner reports a killed process as a plain non-zero exit, so the
	// deadline has to be consulted even when Run returned no error.
	if errors.Is(boundedContext.Err(), context.DeadlineExceeded) {
		timeoutFailure := &ToolFailure{Tool: command.Name, Result: executionResult, TimedOut: true}
		executor.eventObserver.CommandExecutionFailed(command, timeoutFailure)
		executor.logger.Warn(commandFailedLogMessageConstant, zap.String(logFieldToolNameConstant, string(command.Name)), zap.Error(timeoutFailure))
		return executionResult, timeoutFailure
	}

	executor.eventObserver.CommandCompleted(command, executionResult)
	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldToolNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	if executionResult.ExitCode != 0 {
		return executionResult, &ToolFailure{Tool: command.Name, Result: executionResult}
	}

	return executionResult, nil
}

// ExecuteMarkdownLint runs markdownlint with the provided invocation details.
func (executor *ShellExecutor) ExecuteMarkdownLint(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: ToolMarkdownLint, Details: details})
}

// ExecuteYAMLLint runs yamllint with the provided invocation details.
func (executor *ShellExecutor) ExecuteYAMLLint(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: ToolYAMLLint, Details: details})
}
