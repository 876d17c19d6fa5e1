package govsync

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/SecPal/governance/internal/ui"
)

const (
	checkHeaderTemplateConstant  = "Checking %d repositories against %s"
	syncHeaderTemplateConstant   = "Syncing %d repositories from %s"
	targetHeaderTemplateConstant = "%s:"
	checkSummaryTemplateConstant = "%d repositories: %d files in sync, %d outdated, %d missing"
	syncSummaryTemplateConstant  = "%d repositories: %d created, %d updated, %d unchanged, %d failed, %d warnings"
	noTargetsMessageConstant     = "no target repositories found"
	inSyncFileMessageConstant    = "in sync"
	unchangedFileMessageConstant = "unchanged"
	createdFileMessageConstant   = "created"
	updatedFileMessageConstant   = "updated"
)

// TargetDiscoverer locates target repository directories under a workspace root.
type TargetDiscoverer interface {
	DiscoverTargets(workspaceRoot string, sourceDirectoryName string, excludedNames []string) ([]string, error)
}

// Service orchestrates one sync invocation: manifest, discovery, plan, apply,
// grouped report rendering.
type Service struct {
	targetDiscoverer TargetDiscoverer
	statusPrinter    *ui.StatusPrinter
}

// NewService constructs a Service writing report lines to outputWriter.
func NewService(targetDiscoverer TargetDiscoverer, outputWriter io.Writer) *Service {
	return &Service{
		targetDiscoverer: targetDiscoverer,
		statusPrinter:    ui.NewStatusPrinter(outputWriter),
	}
}

// Run loads the manifest, discovers targets, plans, and applies in the given
// mode. The returned report carries the drift and failure counters the caller
// maps to exit codes; the returned error covers configuration and discovery
// problems only.
func (service *Service) Run(executionContext context.Context, workspaceRoot string, manifestPath string, workerLimit int, mode ApplyMode) (SyncReport, error) {
	if len(manifestPath) == 0 {
		manifestPath = filepath.Join(workspaceRoot, DefaultSourceDirectoryName, DefaultManifestFileName)
	}

	manifest, manifestError := LoadManifest(manifestPath)
	if manifestError != nil {
		return SyncReport{}, manifestError
	}

	targetPaths, discoveryError := service.targetDiscoverer.DiscoverTargets(workspaceRoot, manifest.Source, manifest.Exclude)
	if discoveryError != nil {
		return SyncReport{}, discoveryError
	}

	sourceRoot := filepath.Join(workspaceRoot, manifest.Source)
	service.printHeader(mode, len(targetPaths), sourceRoot)
	if len(targetPaths) == 0 {
		service.statusPrinter.PrintWarning(noTargetsMessageConstant)
	}

	engine := NewEngine(workerLimit)
	plan := engine.Plan(sourceRoot, targetPaths, manifest.Files)
	report := engine.Apply(executionContext, plan, mode)

	service.printReport(report)
	return report, nil
}

func (service *Service) printHeader(mode ApplyMode, targetCount int, sourceRoot string) {
	if mode == ApplyModeCheck {
		service.statusPrinter.Println(fmt.Sprintf(checkHeaderTemplateConstant, targetCount, sourceRoot))
		return
	}
	service.statusPrinter.Println(fmt.Sprintf(syncHeaderTemplateConstant, targetCount, sourceRoot))
}

func (service *Service) printReport(report SyncReport) {
	for _, planWarning := range report.PlanWarnings {
		service.statusPrinter.PrintWarning(planWarning)
	}
	for _, targetReport := range report.Targets {
		service.statusPrinter.Println(fmt.Sprintf(targetHeaderTemplateConstant, targetReport.TargetPath))
		for _, warning := range targetReport.Warnings {
			service.statusPrinter.PrintWarning(warning)
		}
		for _, fileOutcome := range targetReport.Files {
			service.printFileOutcome(report.Mode, fileOutcome)
		}
	}
	service.printSummary(report)
}

func (service *Service) printFileOutcome(mode ApplyMode, fileOutcome FileOutcome) {
	if mode == ApplyModeCheck {
		if fileOutcome.State == SyncStateInSync {
			service.statusPrinter.PrintPass(fileOutcome.RelativePath, inSyncFileMessageConstant)
			return
		}
		service.statusPrinter.PrintFail(fileOutcome.RelativePath, string(fileOutcome.State))
		return
	}

	switch fileOutcome.Action {
	case ActionCreated:
		service.statusPrinter.PrintPass(fileOutcome.RelativePath, createdFileMessageConstant)
	case ActionUpdated:
		service.statusPrinter.PrintPass(fileOutcome.RelativePath, updatedFileMessageConstant)
	case ActionFailed:
		service.statusPrinter.PrintFail(fileOutcome.RelativePath, fileOutcome.FailureMessage)
	default:
		service.statusPrinter.PrintPass(fileOutcome.RelativePath, unchangedFileMessageConstant)
	}
}

func (service *Service) printSummary(report SyncReport) {
	if report.Mode == ApplyModeCheck {
		service.statusPrinter.Println(fmt.Sprintf(checkSummaryTemplateConstant, len(report.Targets), report.InSync, report.Outdated, report.Missing))
		return
	}
	service.statusPrinter.Println(fmt.Sprintf(syncSummaryTemplateConstant, len(report.Targets), report.Created, report.Updated, report.Unchanged, report.Failed, report.Warnings))
}
