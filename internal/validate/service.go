package validate

import (
	"context"
	"fmt"
	"io"

	"github.com/SecPal/governance/internal/execshell"
	"github.com/SecPal/governance/internal/repotype"
	"github.com/SecPal/governance/internal/ui"
)

const (
	repositoryHeaderTemplateConstant = "Validating %s (%s repository)"
	suiteSummaryTemplateConstant     = "%d checks: %d passed, %d skipped, %d failed"
)

// LintExecutor is the minimal interface the validator needs from execshell.ShellExecutor.
type LintExecutor interface {
	Probe(toolName execshell.ToolName) execshell.ToolAvailability
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Service executes the compliance suite for a single repository.
type Service struct {
	lintExecutor              LintExecutor
	statusPrinter             *ui.StatusPrinter
	expectedLicenseIdentifier string
	repositoryTypeOverride    string
}

// NewService constructs a Service writing check lines to outputWriter.
func NewService(lintExecutor LintExecutor, outputWriter io.Writer, expectedLicenseIdentifier string, repositoryTypeOverride string) *Service {
	if len(expectedLicenseIdentifier) == 0 {
		expectedLicenseIdentifier = defaultExpectedLicenseIdentifierValue
	}
	return &Service{
		lintExecutor:              lintExecutor,
		statusPrinter:             ui.NewStatusPrinter(outputWriter),
		expectedLicenseIdentifier: expectedLicenseIdentifier,
		repositoryTypeOverride:    repositoryTypeOverride,
	}
}

// RunSuite classifies the repository, executes the ordered check list, prints
// one line per check plus a numeric summary, and returns the structured suite
// for programmatic consumers. Exit-code mapping from the aggregate outcome is
// the caller's responsibility.
func (service *Service) RunSuite(executionContext context.Context, repositoryPath string) (CheckSuite, error) {
	repositoryType := repotype.DetectWithOverride(repositoryPath, service.repositoryTypeOverride)

	service.statusPrinter.Println(fmt.Sprintf(repositoryHeaderTemplateConstant, repositoryPath, repositoryType))

	checkState := &checkContext{
		executionContext:          executionContext,
		repositoryPath:            repositoryPath,
		repositoryType:            repositoryType,
		lintExecutor:              service.lintExecutor,
		expectedLicenseIdentifier: service.expectedLicenseIdentifier,
	}

	suite := CheckSuite{RepositoryPath: repositoryPath, RepositoryType: repositoryType}
	for _, definition := range orderedCheckDefinitions() {
		checkResult, checkError := service.executeDefinition(definition, checkState)
		if checkError != nil {
			return CheckSuite{}, checkError
		}

		suite.Results = append(suite.Results, checkResult)
		service.printResult(checkResult)
	}

	summary := suite.Summarize()
	service.statusPrinter.Println(fmt.Sprintf(suiteSummaryTemplateConstant, summary.Total, summary.Passed, summary.Skipped, summary.Failed))

	return suite, nil
}

func (service *Service) executeDefinition(definition checkDefinition, checkState *checkContext) (CheckResult, error) {
	if _, excluded := definition.excludedTypes[checkState.repositoryType]; excluded {
		return CheckResult{Name: definition.name, Status: CheckStatusSkip, Message: definition.notApplicableMessage}, nil
	}
	return definition.run(checkState)
}

func (service *Service) printResult(checkResult CheckResult) {
	switch checkResult.Status {
	case CheckStatusPass:
		service.statusPrinter.PrintPass(checkResult.Name, checkResult.Message)
	case CheckStatusSkip:
		service.statusPrinter.PrintSkip(checkResult.Name, checkResult.Message)
	case CheckStatusFail:
		service.statusPrinter.PrintFail(checkResult.Name, checkResult.Message)
	}
}
