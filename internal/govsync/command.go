package govsync

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SecPal/governance/internal/workspace"
)

const (
	commandUseConstant              = "sync [workspace-root]"
	commandShortDescriptionConstant = "Mirror governance files from the canonical source into every target repository"
	commandLongDescriptionConstant  = "sync compares the tracked governance files of every repository under the workspace root against the canonical source copies and, unless --check is given, repairs any drift by copying the canonical bytes."

	checkFlagNameConstant        = "check"
	checkFlagDescriptionConstant = "Report drift without modifying any target repository"
	manifestFlagNameConstant     = "manifest"
	manifestFlagDescription      = "Path to the governance manifest (defaults to <workspace-root>/.github/governance.yaml)"
	workersFlagNameConstant      = "workers"
	workersFlagDescription       = "Maximum number of target repositories processed concurrently"

	defaultWorkspaceRootConstant = "."

	driftDetectedMessageConstant = "governance drift detected"
	syncFailedMessageConstant    = "governance sync failed"

	completionLogMessageConstant = "governance sync completed"
	modeLogFieldNameConstant     = "mode"
	targetsLogFieldNameConstant  = "targets"
	changedLogFieldNameConstant  = "changed_files"
	failedLogFieldNameConstant   = "failed_files"
)

// ErrDriftDetected signals Check-mode drift; the CLI maps it to exit code 1.
var ErrDriftDetected = errors.New(driftDetectedMessageConstant)

// ErrSyncFailed signals that at least one file copy failed; the CLI maps it to exit code 1.
var ErrSyncFailed = errors.New(syncFailedMessageConstant)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the sync cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	TargetDiscoverer      TargetDiscoverer
}

// Build constructs the cobra command for governance file synchronization.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().Bool(checkFlagNameConstant, false, checkFlagDescriptionConstant)
	command.Flags().String(manifestFlagNameConstant, "", manifestFlagDescription)
	command.Flags().Int(workersFlagNameConstant, 0, workersFlagDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	workspaceRoot := defaultWorkspaceRootConstant
	if len(arguments) > 0 && len(strings.TrimSpace(arguments[0])) > 0 {
		workspaceRoot = arguments[0]
	}

	configuration := builder.resolveConfiguration()

	manifestPath := configuration.ManifestPath
	if flagManifest, _ := command.Flags().GetString(manifestFlagNameConstant); len(strings.TrimSpace(flagManifest)) > 0 {
		manifestPath = flagManifest
	}

	workerLimit := configuration.Workers
	if flagWorkers, _ := command.Flags().GetInt(workersFlagNameConstant); flagWorkers > 0 {
		workerLimit = flagWorkers
	}

	mode := ApplyModeSync
	if checkRequested, _ := command.Flags().GetBool(checkFlagNameConstant); checkRequested {
		mode = ApplyModeCheck
	}

	service := NewService(builder.resolveTargetDiscoverer(), command.OutOrStdout())
	report, runError := service.Run(command.Context(), workspaceRoot, manifestPath, workerLimit, mode)
	if runError != nil {
		return runError
	}

	builder.resolveLogger().Debug(completionLogMessageConstant,
		zap.String(modeLogFieldNameConstant, string(report.Mode)),
		zap.Int(targetsLogFieldNameConstant, len(report.Targets)),
		zap.Int(changedLogFieldNameConstant, report.ChangedFiles()),
		zap.Int(failedLogFieldNameConstant, report.Failed),
	)

	if mode == ApplyModeCheck && report.DriftDetected() {
		return ErrDriftDetected
	}
	if report.Failed > 0 {
		return ErrSyncFailed
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveTargetDiscoverer() TargetDiscoverer {
	if builder.TargetDiscoverer != nil {
		return builder.TargetDiscoverer
	}
	return workspace.NewFilesystemTargetDiscoverer()
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
