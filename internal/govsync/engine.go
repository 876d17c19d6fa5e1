package govsync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkerLimitConstant = 4

	sourceFileWarningTemplateConstant    = "source file %s unreadable, excluded from plan: %v"
	targetDirectoryWarningTemplate       = "target directory %s does not exist"
	copyFailureMessageTemplateConstant   = "%v"
	mirroredFilePermissionsConstant      = os.FileMode(0o644)
	mirroredDirectoryPermissionsConstant = os.FileMode(0o755)
)

// Engine computes and applies drift-repair plans.
type Engine struct {
	workerLimit int
}

// NewEngine constructs an Engine with a bounded per-target worker pool.
func NewEngine(workerLimit int) *Engine {
	if workerLimit <= 0 {
		workerLimit = defaultWorkerLimitConstant
	}
	return &Engine{workerLimit: workerLimit}
}

// Plan computes the sync state of every tracked path in every target
// repository by byte-exact comparison against the canonical source copy.
//
// An unreadable source file is a configuration warning and excludes that path
// from the whole plan; a missing target directory is a per-target warning and
// the remaining targets are still processed.
func (engine *Engine) Plan(sourceRoot string, targetPaths []string, trackedPaths []string) SyncPlan {
	plan := SyncPlan{SourceRoot: sourceRoot, sourceContents: make(map[string][]byte)}

	comparablePaths := make([]string, 0, len(trackedPaths))
	for _, trackedPath := range sortedUnique(trackedPaths) {
		sourceContents, readError := os.ReadFile(filepath.Join(sourceRoot, filepath.FromSlash(trackedPath)))
		if readError != nil {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf(sourceFileWarningTemplateConstant, trackedPath, readError))
			continue
		}
		plan.sourceContents[trackedPath] = sourceContents
		comparablePaths = append(comparablePaths, trackedPath)
	}

	for _, targetPath := range targetPaths {
		plan.Targets = append(plan.Targets, engine.planTarget(targetPath, comparablePaths, plan.sourceContents))
	}

	return plan
}

func (engine *Engine) planTarget(targetPath string, trackedPaths []string, sourceContents map[string][]byte) TargetPlan {
	targetPlan := TargetPlan{TargetPath: targetPath}

	targetInfo, statError := os.Stat(targetPath)
	if statError != nil || !targetInfo.IsDir() {
		targetPlan.Warnings = append(targetPlan.Warnings, fmt.Sprintf(targetDirectoryWarningTemplate, targetPath))
		return targetPlan
	}

	for _, trackedPath := range trackedPaths {
		mirroredContents, readError := os.ReadFile(filepath.Join(targetPath, filepath.FromSlash(trackedPath)))
		switch {
		case os.IsNotExist(readError):
			targetPlan.Files = append(targetPlan.Files, GovernanceFile{RelativePath: trackedPath, State: SyncStateMissing})
		case readError != nil:
			// An unreadable mirror is drift; Sync mode will attempt the repair
			// and surface the I/O error if it persists.
			targetPlan.Files = append(targetPlan.Files, GovernanceFile{RelativePath: trackedPath, State: SyncStateOutdated})
		case bytes.Equal(sourceContents[trackedPath], mirroredContents):
			targetPlan.Files = append(targetPlan.Files, GovernanceFile{RelativePath: trackedPath, State: SyncStateInSync})
		default:
			targetPlan.Files = append(targetPlan.Files, GovernanceFile{RelativePath: trackedPath, State: SyncStateOutdated})
		}
	}

	return targetPlan
}

// Apply consumes the plan once. Check mode performs zero filesystem mutation
// and only enumerates states; Sync mode copies every outdated or missing file
// from the canonical source, leaving in-sync files untouched. Per-file I/O
// errors are recorded and the remaining files continue to be processed.
//
// Apply is idempotent: a second Sync run with no intervening source change
// reports zero changed files.
func (engine *Engine) Apply(executionContext context.Context, plan SyncPlan, mode ApplyMode) SyncReport {
	report := SyncReport{Mode: mode, Targets: make([]TargetReport, len(plan.Targets)), PlanWarnings: plan.Warnings}
	report.Warnings += len(plan.Warnings)

	workGroup, groupContext := errgroup.WithContext(executionContext)
	workGroup.SetLimit(engine.workerLimit)

	for targetIndex := range plan.Targets {
		targetIndex := targetIndex
		workGroup.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}
			report.Targets[targetIndex] = engine.applyTarget(plan, plan.Targets[targetIndex], mode)
			return nil
		})
	}
	_ = workGroup.Wait()

	for _, targetReport := range report.Targets {
		report.Warnings += len(targetReport.Warnings)
		for _, fileOutcome := range targetReport.Files {
			engine.tallyOutcome(&report, fileOutcome)
		}
	}

	return report
}

func (engine *Engine) applyTarget(plan SyncPlan, targetPlan TargetPlan, mode ApplyMode) TargetReport {
	targetReport := TargetReport{TargetPath: targetPlan.TargetPath, Warnings: targetPlan.Warnings}

	for _, governanceFile := range targetPlan.Files {
		fileOutcome := FileOutcome{RelativePath: governanceFile.RelativePath, State: governanceFile.State, Action: ActionNone}

		if mode == ApplyModeSync && governanceFile.State != SyncStateInSync {
			fileOutcome = engine.repairFile(plan, targetPlan.TargetPath, governanceFile)
		}

		targetReport.Files = append(targetReport.Files, fileOutcome)
	}

	return targetReport
}

func (engine *Engine) repairFile(plan SyncPlan, targetPath string, governanceFile GovernanceFile) FileOutcome {
	fileOutcome := FileOutcome{RelativePath: governanceFile.RelativePath, State: governanceFile.State}

	destinationPath := filepath.Join(targetPath, filepath.FromSlash(governanceFile.RelativePath))
	if directoryError := os.MkdirAll(filepath.Dir(destinationPath), mirroredDirectoryPermissionsConstant); directoryError != nil {
		fileOutcome.Action = ActionFailed
		fileOutcome.FailureMessage = fmt.Sprintf(copyFailureMessageTemplateConstant, directoryError)
		return fileOutcome
	}

	if writeError := os.WriteFile(destinationPath, plan.sourceContents[governanceFile.RelativePath], mirroredFilePermissionsConstant); writeError != nil {
		fileOutcome.Action = ActionFailed
		fileOutcome.FailureMessage = fmt.Sprintf(copyFailureMessageTemplateConstant, writeError)
		return fileOutcome
	}

	if governanceFile.State == SyncStateMissing {
		fileOutcome.Action = ActionCreated
	} else {
		fileOutcome.Action = ActionUpdated
	}
	return fileOutcome
}

func (engine *Engine) tallyOutcome(report *SyncReport, fileOutcome FileOutcome) {
	switch fileOutcome.State {
	case SyncStateInSync:
		report.InSync++
	case SyncStateOutdated:
		report.Outdated++
	case SyncStateMissing:
		report.Missing++
	}

	switch fileOutcome.Action {
	case ActionCreated:
		report.Created++
	case ActionUpdated:
		report.Updated++
	case ActionFailed:
		report.Failed++
	case ActionNone:
		if fileOutcome.State == SyncStateInSync {
			report.Unchanged++
		}
	}
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var uniqueValues []string
	for _, value := range values {
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		uniqueValues = append(uniqueValues, value)
	}
	sort.Strings(uniqueValues)
	return uniqueValues
}
