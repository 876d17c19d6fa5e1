package execshell

import (
	"fmt"
	"strings"
)

const (
	markdownLintToolNameConstant = "markdownlint"
	yamlLintToolNameConstant     = "yamllint"

	toolFailureMessageTemplateConstant = "%s exited with code %d"
	toolTimeoutMessageTemplateConstant = "%s timed out"
	standardErrorSuffixTemplate        = ": %s"
)

// ToolName identifies an external executable invoked through the executor.
type ToolName string

// Tool names used by the compliance checks.
const (
	ToolMarkdownLint ToolName = ToolName(markdownLintToolNameConstant)
	ToolYAMLLint     ToolName = ToolName(yamlLintToolNameConstant)
)

// ToolAvailability reports whether an external tool can be located on the lookup path.
type ToolAvailability int

// Availability states returned by Probe.
const (
	ToolUnavailable ToolAvailability = iota
	ToolAvailable
)

// CommandDetails describes the invocation parameters for a tool.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
}

// ShellCommand combines a tool name with its invocation details.
type ShellCommand struct {
	Name    ToolName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a completed process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// ToolFailure reports a tool that executed but returned a non-zero status or exceeded its timeout.
type ToolFailure struct {
	Tool     ToolName
	Result   ExecutionResult
	TimedOut bool
}

// Error renders the failure with captured standard error attached for diagnosis.
func (failure *ToolFailure) Error() string {
	baseMessage := fmt.Sprintf(toolFailureMessageTemplateConstant, failure.Tool, failure.Result.ExitCode)
	if failure.TimedOut {
		baseMessage = fmt.Sprintf(toolTimeoutMessageTemplateConstant, failure.Tool)
	}

	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return baseMessage
	}
	return baseMessage + fmt.Sprintf(standardErrorSuffixTemplate, trimmedStandardError)
}

// Diagnostics joins captured output streams into a single trimmed block.
func (failure *ToolFailure) Diagnostics() string {
	combinedOutput := strings.TrimSpace(failure.Result.StandardOutput + "\n" + failure.Result.StandardError)
	return combinedOutput
}
