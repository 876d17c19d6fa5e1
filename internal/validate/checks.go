package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SecPal/governance/internal/execshell"
	"github.com/SecPal/governance/internal/repotype"
)

const (
	requiredInstructionsRelativePathConstant = ".github/copilot-instructions.md"
	optionalSetupStepsRelativePathConstant   = ".github/copilot-setup-steps.yml"

	requiredFileCheckNameConstant      = "copilot instructions present"
	optionalFileCheckNameConstant      = "copilot setup steps present"
	requiredLicenseCheckNameConstant   = "copilot instructions license"
	optionalLicenseCheckNameConstant   = "copilot setup steps license"
	markdownLintCheckNameConstant      = "markdown structure lint"
	yamlSyntaxCheckNameConstant        = "setup steps yaml syntax"
	inheritanceMarkerCheckNameConstant = "org instructions inheritance marker"
	requiredKeywordsCheckNameConstant  = "required content keywords"
	reminderBlockCheckNameConstant     = "contributor reminder block"

	fileNotFoundMessageConstant         = "file not found"
	optionalFileAbsentMessageConstant   = "optional file absent"
	toolNotAvailableMessageConstant     = "tool not available"
	sidecarMissingMessageConstant       = "license side-car not found"
	notApplicableForOrgMessageConstant  = "not applicable to the org repository"
	identifierMismatchTemplateConstant  = "expected %s, found %s"
	missingKeywordsTemplateConstant     = "missing required topics: %s"
	inheritanceMarkerMissingMessage     = "no reference to the organization-wide instructions"
	reminderBlockMissingMessageConstant = "no contributor reminder block"
	keywordListJoinSeparatorConstant    = ", "
)

// keywordConcept groups the accepted conceptual variants for one required topic.
type keywordConcept struct {
	conceptName     string
	acceptedPhrases []string
}

var requiredContentConcepts = []keywordConcept{
	{conceptName: "conventional commits", acceptedPhrases: []string{"conventional commits", "commit message convention", "commit convention"}},
	{conceptName: "security", acceptedPhrases: []string{"security", "privacy", "threat model"}},
	{conceptName: "testing", acceptedPhrases: []string{"test-driven", "tdd", "write tests", "testing"}},
}

var inheritanceMarkerPhrases = []string{"secpal/.github", "organization-wide instructions", "org-wide instructions"}

var reminderBlockPhrases = []string{"before opening a pull request", "before submitting a pull request", "pr checklist"}

// checkContext carries the per-repository inputs shared by all checks.
type checkContext struct {
	executionContext          context.Context
	repositoryPath            string
	repositoryType            repotype.RepoType
	lintExecutor              LintExecutor
	expectedLicenseIdentifier string
}

// checkDefinition pairs a check name with its archetype applicability and
// implementation; applicability is data so the suite shape stays fixed.
type checkDefinition struct {
	name                 string
	excludedTypes        map[repotype.RepoType]struct{}
	notApplicableMessage string
	run                  func(checkState *checkContext) (CheckResult, error)
}

var organizationOnlyExclusion = map[repotype.RepoType]struct{}{repotype.RepoTypeOrg: {}}

// orderedCheckDefinitions returns the fixed, ordered compliance check list.
func orderedCheckDefinitions() []checkDefinition {
	return []checkDefinition{
		{name: requiredFileCheckNameConstant, run: checkRequiredFileExistence},
		{name: optionalFileCheckNameConstant, run: checkOptionalFileExistence},
		{name: requiredLicenseCheckNameConstant, run: checkRequiredFileLicense},
		{name: optionalLicenseCheckNameConstant, run: checkOptionalFileLicense},
		{name: markdownLintCheckNameConstant, run: checkMarkdownStructure},
		{name: yamlSyntaxCheckNameConstant, run: checkSetupStepsSyntax},
		{
			name:                 inheritanceMarkerCheckNameConstant,
			excludedTypes:        organizationOnlyExclusion,
			notApplicableMessage: notApplicableForOrgMessageConstant,
			run:                  checkInheritanceMarker,
		},
		{name: requiredKeywordsCheckNameConstant, run: checkRequiredKeywords},
		{
			name:                 reminderBlockCheckNameConstant,
			excludedTypes:        organizationOnlyExclusion,
			notApplicableMessage: notApplicableForOrgMessageConstant,
			run:                  checkReminderBlock,
		},
	}
}

func (checkState *checkContext) requiredInstructionsPath() string {
	return filepath.Join(checkState.repositoryPath, filepath.FromSlash(requiredInstructionsRelativePathConstant))
}

func (checkState *checkContext) optionalSetupStepsPath() string {
	return filepath.Join(checkState.repositoryPath, filepath.FromSlash(optionalSetupStepsRelativePathConstant))
}

func fileExists(filePath string) bool {
	fileInfo, statError := os.Stat(filePath)
	return statError == nil && !fileInfo.IsDir()
}

func checkRequiredFileExistence(checkState *checkContext) (CheckResult, error) {
	if !fileExists(checkState.requiredInstructionsPath()) {
		return CheckResult{Name: requiredFileCheckNameConstant, Status: CheckStatusFail, Message: fileNotFoundMessageConstant}, nil
	}
	return CheckResult{Name: requiredFileCheckNameConstant, Status: CheckStatusPass}, nil
}

func checkOptionalFileExistence(checkState *checkContext) (CheckResult, error) {
	if !fileExists(checkState.optionalSetupStepsPath()) {
		return CheckResult{Name: optionalFileCheckNameConstant, Status: CheckStatusSkip, Message: optionalFileAbsentMessageConstant}, nil
	}
	return CheckResult{Name: optionalFileCheckNameConstant, Status: CheckStatusPass}, nil
}

func checkRequiredFileLicense(checkState *checkContext) (CheckResult, error) {
	return evaluateLicenseSidecar(requiredLicenseCheckNameConstant, checkState.requiredInstructionsPath(), checkState.expectedLicenseIdentifier, CheckStatusFail)
}

func checkOptionalFileLicense(checkState *checkContext) (CheckResult, error) {
	if !fileExists(checkState.optionalSetupStepsPath()) {
		return CheckResult{Name: optionalLicenseCheckNameConstant, Status: CheckStatusSkip, Message: optionalFileAbsentMessageConstant}, nil
	}
	return evaluateLicenseSidecar(optionalLicenseCheckNameConstant, checkState.optionalSetupStepsPath(), checkState.expectedLicenseIdentifier, CheckStatusFail)
}

// evaluateLicenseSidecar maps the three side-car conditions to outcomes:
// absent side-car → absentStatus, identifier mismatch → Fail, and a
// present-but-malformed or unreadable side-car → ConfigurationError.
func evaluateLicenseSidecar(checkName string, documentPath string, expectedIdentifier string, absentStatus CheckStatus) (CheckResult, error) {
	sidecarPath := licenseSidecarPath(documentPath)
	foundIdentifier, readError := readLicenseIdentifier(sidecarPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return CheckResult{Name: checkName, Status: absentStatus, Message: sidecarMissingMessageConstant}, nil
		}
		return CheckResult{}, &ConfigurationError{Path: sidecarPath, Cause: readError}
	}

	if foundIdentifier != expectedIdentifier {
		mismatchMessage := fmt.Sprintf(identifierMismatchTemplateConstant, expectedIdentifier, foundIdentifier)
		return CheckResult{Name: checkName, Status: CheckStatusFail, Message: mismatchMessage}, nil
	}
	return CheckResult{Name: checkName, Status: CheckStatusPass}, nil
}

func checkMarkdownStructure(checkState *checkContext) (CheckResult, error) {
	if !fileExists(checkState.requiredInstructionsPath()) {
		return CheckResult{Name: markdownLintCheckNameConstant, Status: CheckStatusSkip, Message: fileNotFoundMessageConstant}, nil
	}
	return runLintTool(checkState, markdownLintCheckNameConstant, execshell.ToolMarkdownLint, requiredInstructionsRelativePathConstant)
}

func checkSetupStepsSyntax(checkState *checkContext) (CheckResult, error) {
	if !fileExists(checkState.optionalSetupStepsPath()) {
		return CheckResult{Name: yamlSyntaxCheckNameConstant, Status: CheckStatusSkip, Message: optionalFileAbsentMessageConstant}, nil
	}
	return runLintTool(checkState, yamlSyntaxCheckNameConstant, execshell.ToolYAMLLint, optionalSetupStepsRelativePathConstant)
}

// runLintTool degrades to Skip when the tool is absent and fails only when a
// present tool reports a problem or times out.
func runLintTool(checkState *checkContext, checkName string, toolName execshell.ToolName, targetRelativePath string) (CheckResult, error) {
	if checkState.lintExecutor.Probe(toolName) == execshell.ToolUnavailable {
		return CheckResult{Name: checkName, Status: CheckStatusSkip, Message: toolNotAvailableMessageConstant}, nil
	}

	lintCommand := execshell.ShellCommand{
		Name: toolName,
		Details: execshell.CommandDetails{
			Arguments:        []string{filepath.FromSlash(targetRelativePath)},
			WorkingDirectory: checkState.repositoryPath,
		},
	}

	if _, executionError := checkState.lintExecutor.Execute(checkState.executionContext, lintCommand); executionError != nil {
		return CheckResult{Name: checkName, Status: CheckStatusFail, Message: firstDiagnosticLine(executionError)}, nil
	}
	return CheckResult{Name: checkName, Status: CheckStatusPass}, nil
}

func firstDiagnosticLine(executionError error) string {
	diagnosticLines := strings.Split(strings.TrimSpace(executionError.Error()), "\n")
	return diagnosticLines[0]
}

func checkInheritanceMarker(checkState *checkContext) (CheckResult, error) {
	return evaluateInstructionsProse(checkState, inheritanceMarkerCheckNameConstant, func(proseText string) (CheckStatus, string) {
		if proseContainsAnyVariant(proseText, inheritanceMarkerPhrases) {
			return CheckStatusPass, ""
		}
		return CheckStatusFail, inheritanceMarkerMissingMessage
	})
}

func checkRequiredKeywords(checkState *checkContext) (CheckResult, error) {
	return evaluateInstructionsProse(checkState, requiredKeywordsCheckNameConstant, func(proseText string) (CheckStatus, string) {
		var missingConcepts []string
		for _, concept := range requiredContentConcepts {
			if !proseContainsAnyVariant(proseText, concept.acceptedPhrases) {
				missingConcepts = append(missingConcepts, concept.conceptName)
			}
		}
		if len(missingConcepts) > 0 {
			return CheckStatusFail, fmt.Sprintf(missingKeywordsTemplateConstant, strings.Join(missingConcepts, keywordListJoinSeparatorConstant))
		}
		return CheckStatusPass, ""
	})
}

func checkReminderBlock(checkState *checkContext) (CheckResult, error) {
	return evaluateInstructionsProse(checkState, reminderBlockCheckNameConstant, func(proseText string) (CheckStatus, string) {
		if proseContainsAnyVariant(proseText, reminderBlockPhrases) {
			return CheckStatusPass, ""
		}
		return CheckStatusFail, reminderBlockMissingMessageConstant
	})
}

// evaluateInstructionsProse runs a content predicate over the instructions
// document; an absent document degrades to Skip because the existence check
// already failed the suite.
func evaluateInstructionsProse(checkState *checkContext, checkName string, evaluateProse func(proseText string) (CheckStatus, string)) (CheckResult, error) {
	instructionsContents, readError := os.ReadFile(checkState.requiredInstructionsPath())
	if readError != nil {
		if os.IsNotExist(readError) {
			return CheckResult{Name: checkName, Status: CheckStatusSkip, Message: fileNotFoundMessageConstant}, nil
		}
		return CheckResult{}, &ConfigurationError{Path: checkState.requiredInstructionsPath(), Cause: readError}
	}

	proseText := extractMarkdownProse(instructionsContents)
	resultStatus, resultMessage := evaluateProse(proseText)
	return CheckResult{Name: checkName, Status: resultStatus, Message: resultMessage}, nil
}
