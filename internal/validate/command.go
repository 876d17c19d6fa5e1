package validate

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SecPal/governance/internal/execshell"
	"github.com/SecPal/governance/internal/ui"
)

const (
	commandUseConstant              = "validate [repository-path]"
	commandShortDescriptionConstant = "Run the compliance check suite against one repository"
	commandLongDescriptionConstant  = "validate classifies the repository archetype from filesystem markers and executes the ordered compliance checks for its instruction and configuration files."

	repoTypeFlagNameConstant        = "repo-type"
	repoTypeFlagDescriptionConstant = "Override automatic repository classification (org, api, frontend, contracts)"
	toolTimeoutFlagNameConstant     = "tool-timeout"
	toolTimeoutFlagDescription      = "Timeout in seconds for each external lint tool invocation"

	repositoryTypeEnvironmentVariableConstant = "SECPAL_REPO_TYPE"
	defaultRepositoryPathConstant             = "."
	complianceFailedMessageConstant           = "compliance validation failed"
)

// ErrComplianceFailed signals an aggregate Fail outcome; the CLI maps it to exit code 1.
var ErrComplianceFailed = errors.New(complianceFailedMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the validate cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	LintExecutor                 LintExecutor
}

// Build constructs the cobra command for compliance validation.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(repoTypeFlagNameConstant, "", repoTypeFlagDescriptionConstant)
	command.Flags().Int(toolTimeoutFlagNameConstant, 0, toolTimeoutFlagDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	repositoryPath := defaultRepositoryPathConstant
	if len(arguments) > 0 && len(strings.TrimSpace(arguments[0])) > 0 {
		repositoryPath = arguments[0]
	}

	configuration := builder.resolveConfiguration()

	repositoryTypeOverride := builder.resolveRepositoryTypeOverride(command, configuration)

	timeoutSeconds := configuration.ToolTimeoutSeconds
	if flagTimeout, _ := command.Flags().GetInt(toolTimeoutFlagNameConstant); flagTimeout > 0 {
		timeoutSeconds = flagTimeout
	}

	lintExecutor, executorError := builder.resolveLintExecutor(timeoutSeconds)
	if executorError != nil {
		return executorError
	}

	service := NewService(lintExecutor, command.OutOrStdout(), configuration.LicenseIdentifier, repositoryTypeOverride)
	suite, suiteError := service.RunSuite(command.Context(), repositoryPath)
	if suiteError != nil {
		return suiteError
	}

	if suite.Aggregate() == CheckStatusFail {
		return ErrComplianceFailed
	}
	return nil
}

// resolveRepositoryTypeOverride applies strict precedence: flag, then the
// SECPAL_REPO_TYPE environment variable, then configuration. Classification
// itself stays purely filesystem-driven when all three are empty.
func (builder *CommandBuilder) resolveRepositoryTypeOverride(command *cobra.Command, configuration CommandConfiguration) string {
	if flagValue, _ := command.Flags().GetString(repoTypeFlagNameConstant); len(strings.TrimSpace(flagValue)) > 0 {
		return flagValue
	}
	if environmentValue := strings.TrimSpace(os.Getenv(repositoryTypeEnvironmentVariableConstant)); len(environmentValue) > 0 {
		return environmentValue
	}
	return configuration.RepositoryType
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveLintExecutor(timeoutSeconds int) (LintExecutor, error) {
	if builder.LintExecutor != nil {
		return builder.LintExecutor, nil
	}

	logger := builder.resolveLogger()

	var eventObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), eventObserver)
	if creationError != nil {
		return nil, creationError
	}
	if timeoutSeconds > 0 {
		shellExecutor.SetInvocationTimeout(time.Duration(timeoutSeconds) * time.Second)
	}
	return shellExecutor, nil
}
