package execshell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SecPal/governance/internal/execshell"
)

type stubToolLocator struct {
	availableTools map[string]struct{}
}

func (locator stubToolLocator) LookupTool(toolName string) (string, error) {
	if _, found := locator.availableTools[toolName]; found {
		return "/usr/bin/" + toolName, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

type stubCommandRunner struct {
	result              execshell.ExecutionResult
	runError            error
	blockUntilCancelled bool
}

func (runner stubCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	if runner.blockUntilCancelled {
		<-executionContext.Done()
		return execshell.ExecutionResult{}, executionContext.Err()
	}
	return runner.result, runner.runError
}

type recordingObserver struct {
	startedCommands   []execshell.ShellCommand
	completedCommands []execshell.ShellCommand
	failures          []error
}

func (observer *recordingObserver) CommandStarted(command execshell.ShellCommand) {
	observer.startedCommands = append(observer.startedCommands, command)
}

func (observer *recordingObserver) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	observer.completedCommands = append(observer.completedCommands, command)
}

func (observer *recordingObserver) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	observer.failures = append(observer.failures, failure)
}

func TestProbeDistinguishesAvailability(testInstance *testing.T) {
	executor, creationError := execshell.NewShellExecutor(nil, stubCommandRunner{}, nil)
	require.NoError(testInstance, creationError)

	executor.SetToolLocator(stubToolLocator{availableTools: map[string]struct{}{"markdownlint": {}}})

	require.Equal(testInstance, execshell.ToolAvailable, executor.Probe(execshell.ToolMarkdownLint))
	require.Equal(testInstance, execshell.ToolUnavailable, executor.Probe(execshell.ToolYAMLLint))
}

func TestExecuteBehaviors(testInstance *testing.T) {
	testCases := []struct {
		name             string
		runner           stubCommandRunner
		expectToolError  bool
		expectedExitCode int
		expectTimedOut   bool
	}{
		{
			name:             "zero_exit_succeeds",
			runner:           stubCommandRunner{result: execshell.ExecutionResult{StandardOutput: "clean", ExitCode: 0}},
			expectToolError:  false,
			expectedExitCode: 0,
		},
		{
			name:             "non_zero_exit_is_tool_failure",
			runner:           stubCommandRunner{result: execshell.ExecutionResult{StandardError: "MD013 line too long", ExitCode: 1}},
			expectToolError:  true,
			expectedExitCode: 1,
		},
		{
			name:            "timeout_is_tool_failure",
			runner:          stubCommandRunner{blockUntilCancelled: true},
			expectToolError: true,
			expectTimedOut:  true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			observer := &recordingObserver{}
			executor, creationError := execshell.NewShellExecutor(nil, testCase.runner, observer)
			require.NoError(subtest, creationError)
			executor.SetInvocationTimeout(25 * time.Millisecond)

			executionResult, executionError := executor.ExecuteMarkdownLint(context.Background(), execshell.CommandDetails{Arguments: []string{"README.md"}})

			if !testCase.expectToolError {
				require.NoError(subtest, executionError)
				require.Equal(subtest, testCase.expectedExitCode, executionResult.ExitCode)
				require.Len(subtest, observer.completedCommands, 1)
				return
			}

			toolFailure := &execshell.ToolFailure{}
			require.ErrorAs(subtest, executionError, &toolFailure)
			require.Equal(subtest, execshell.ToolMarkdownLint, toolFailure.Tool)
			require.Equal(subtest, testCase.expectTimedOut, toolFailure.TimedOut)
			if !testCase.expectTimedOut {
				require.Equal(subtest, testCase.expectedExitCode, toolFailure.Result.ExitCode)
				require.Contains(subtest, toolFailure.Error(), "MD013")
			}
			require.Len(subtest, observer.startedCommands, 1)
		})
	}
}

func TestNewShellExecutorRequiresRunner(testInstance *testing.T) {
	_, creationError := execshell.NewShellExecutor(nil, nil, nil)
	require.Error(testInstance, creationError)
}
