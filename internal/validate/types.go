package validate

import (
	"fmt"

	"github.com/SecPal/governance/internal/repotype"
)

const (
	passStatusStringConstant = "pass"
	failStatusStringConstant = "fail"
	skipStatusStringConstant = "skip"

	configurationErrorTemplateConstant = "configuration error in %s: %v"
)

// CheckStatus classifies the outcome of a single compliance check.
type CheckStatus string

// Check outcomes; Skip never contributes to suite failure.
const (
	CheckStatusPass CheckStatus = CheckStatus(passStatusStringConstant)
	CheckStatusFail CheckStatus = CheckStatus(failStatusStringConstant)
	CheckStatusSkip CheckStatus = CheckStatus(skipStatusStringConstant)
)

// CheckResult captures one check's name, outcome, and optional hint.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
}

// CheckSuite is the ordered sequence of results produced for one repository.
type CheckSuite struct {
	RepositoryPath string
	RepositoryType repotype.RepoType
	Results        []CheckResult
}

// Aggregate folds the suite into a single outcome: Fail iff at least one
// member failed, otherwise Pass even when some members were skipped.
func (suite CheckSuite) Aggregate() CheckStatus {
	for _, checkResult := range suite.Results {
		if checkResult.Status == CheckStatusFail {
			return CheckStatusFail
		}
	}
	return CheckStatusPass
}

// SuiteSummary tallies suite results for the closing report line.
type SuiteSummary struct {
	Total   int
	Passed  int
	Skipped int
	Failed  int
}

// Summarize computes the numeric summary for the suite.
func (suite CheckSuite) Summarize() SuiteSummary {
	summary := SuiteSummary{Total: len(suite.Results)}
	for _, checkResult := range suite.Results {
		switch checkResult.Status {
		case CheckStatusPass:
			summary.Passed++
		case CheckStatusSkip:
			summary.Skipped++
		case CheckStatusFail:
			summary.Failed++
		}
	}
	return summary
}

// ConfigurationError reports a malformed or unreadable check input scoped to
// the repository being validated; it aborts that repository's suite.
type ConfigurationError struct {
	Path  string
	Cause error
}

// Error renders the offending path together with the underlying cause.
func (configurationError *ConfigurationError) Error() string {
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.Path, configurationError.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (configurationError *ConfigurationError) Unwrap() error {
	return configurationError.Cause
}
