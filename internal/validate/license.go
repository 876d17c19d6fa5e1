package validate

import (
	"errors"
	"os"
	"strings"
)

const (
	licenseSidecarSuffixConstant          = ".license"
	spdxIdentifierLinePrefixConstant      = "SPDX-License-Identifier:"
	licenseIdentifierMissingMessage       = "no SPDX-License-Identifier line found"
	defaultExpectedLicenseIdentifierValue = "CC0-1.0"
)

// ErrLicenseIdentifierMissing reports a side-car file without an SPDX identifier line.
var ErrLicenseIdentifierMissing = errors.New(licenseIdentifierMissingMessage)

// licenseSidecarPath derives the side-car path for a governed document.
func licenseSidecarPath(documentPath string) string {
	return documentPath + licenseSidecarSuffixConstant
}

// readLicenseIdentifier extracts the SPDX identifier from a side-car file.
//
// The caller distinguishes a missing file (os.IsNotExist on the returned
// error) from a present-but-malformed one (ErrLicenseIdentifierMissing),
// because the two map to different check outcomes.
func readLicenseIdentifier(sidecarPath string) (string, error) {
	sidecarContents, readError := os.ReadFile(sidecarPath)
	if readError != nil {
		return "", readError
	}

	for _, sidecarLine := range strings.Split(string(sidecarContents), "\n") {
		trimmedLine := strings.TrimSpace(sidecarLine)
		if !strings.HasPrefix(trimmedLine, spdxIdentifierLinePrefixConstant) {
			continue
		}
		identifierValue := strings.TrimSpace(strings.TrimPrefix(trimmedLine, spdxIdentifierLinePrefixConstant))
		if len(identifierValue) == 0 {
			return "", ErrLicenseIdentifierMissing
		}
		return identifierValue, nil
	}

	return "", ErrLicenseIdentifierMissing
}
