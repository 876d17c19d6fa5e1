package govsync

const (
	inSyncStateStringConstant   = "in sync"
	outdatedStateStringConstant = "outdated"
	missingStateStringConstant  = "missing"

	checkModeStringConstant = "check"
	syncModeStringConstant  = "sync"

	unchangedActionStringConstant = "unchanged"
	createdActionStringConstant   = "created"
	updatedActionStringConstant   = "updated"
	failedActionStringConstant    = "failed"
)

// SyncState classifies one tracked file in one target repository.
type SyncState string

// Sync states computed fresh on every invocation.
const (
	SyncStateInSync   SyncState = SyncState(inSyncStateStringConstant)
	SyncStateOutdated SyncState = SyncState(outdatedStateStringConstant)
	SyncStateMissing  SyncState = SyncState(missingStateStringConstant)
)

// ApplyMode selects between read-only drift reporting and repair.
type ApplyMode string

// Apply modes.
const (
	ApplyModeCheck ApplyMode = ApplyMode(checkModeStringConstant)
	ApplyModeSync  ApplyMode = ApplyMode(syncModeStringConstant)
)

// FileAction records what Apply did (or failed to do) for one file.
type FileAction string

// File actions; Check mode always reports ActionNone.
const (
	ActionNone    FileAction = FileAction(unchangedActionStringConstant)
	ActionCreated FileAction = FileAction(createdActionStringConstant)
	ActionUpdated FileAction = FileAction(updatedActionStringConstant)
	ActionFailed  FileAction = FileAction(failedActionStringConstant)
)

// GovernanceFile pairs a tracked relative path with its computed sync state.
type GovernanceFile struct {
	RelativePath string
	State        SyncState
}

// TargetPlan lists the computed states for one target repository.
type TargetPlan struct {
	TargetPath string
	Files      []GovernanceFile
	Warnings   []string
}

// SyncPlan is the full drift-repair plan for one invocation; it is created
// fresh, consumed once by Apply, and discarded.
type SyncPlan struct {
	SourceRoot string
	Targets    []TargetPlan
	Warnings   []string

	sourceContents map[string][]byte
}

// FileOutcome records the applied result for one tracked file.
type FileOutcome struct {
	RelativePath   string
	State          SyncState
	Action         FileAction
	FailureMessage string
}

// TargetReport groups the outcomes for one target repository so a parallel
// Apply can still render per-repository output un-interleaved.
type TargetReport struct {
	TargetPath string
	Warnings   []string
	Files      []FileOutcome
}

// SyncReport aggregates a full Apply pass. PlanWarnings carries the
// plan-level warning text (unreadable source files) so the report renderer can
// show which tracked paths were excluded; Warnings counts plan-level and
// per-target warnings together.
type SyncReport struct {
	Mode         ApplyMode
	Targets      []TargetReport
	PlanWarnings []string
	InSync       int
	Outdated     int
	Missing      int
	Created      int
	Updated      int
	Unchanged    int
	Warnings     int
	Failed       int
}

// DriftDetected reports whether any tracked file in any target was not in sync.
func (report SyncReport) DriftDetected() bool {
	return report.Outdated > 0 || report.Missing > 0
}

// ChangedFiles counts the files Apply mutated; a repeated Sync run with an
// unchanged source must report zero.
func (report SyncReport) ChangedFiles() int {
	return report.Created + report.Updated
}
