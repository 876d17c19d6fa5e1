package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SecPal/governance/internal/execshell"
	"github.com/SecPal/governance/internal/ui"
)

func TestCommandEventFormatterMessages(testInstance *testing.T) {
	formatter := ui.CommandEventFormatter{}
	command := execshell.ShellCommand{
		Name: execshell.ToolMarkdownLint,
		Details: execshell.CommandDetails{
			Arguments:        []string{".github/copilot-instructions.md"},
			WorkingDirectory: "/workspace/api",
		},
	}

	testCases := []struct {
		name            string
		builtMessage    string
		expectedMessage string
	}{
		{
			name:            "started",
			builtMessage:    formatter.BuildStartedMessage(command),
			expectedMessage: "Running markdownlint .github/copilot-instructions.md (in /workspace/api)",
		},
		{
			name:            "success",
			builtMessage:    formatter.BuildSuccessMessage(command),
			expectedMessage: "Completed markdownlint .github/copilot-instructions.md (in /workspace/api)",
		},
		{
			name:            "failure",
			builtMessage:    formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "MD041 first line"}),
			expectedMessage: "markdownlint .github/copilot-instructions.md (in /workspace/api) failed with exit code 1: MD041 first line",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedMessage, testCase.builtMessage)
		})
	}
}

func TestStatusPrinterLines(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	printer := ui.NewStatusPrinter(outputBuffer)

	printer.PrintPass("required file present", "")
	printer.PrintSkip("markdown lint", "tool not available")
	printer.PrintFail("license identifier", "expected CC0-1.0")

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "[ok] required file present\n")
	require.Contains(testInstance, renderedOutput, "[skip] markdown lint: tool not available\n")
	require.Contains(testInstance, renderedOutput, "[FAIL] license identifier: expected CC0-1.0\n")
}
