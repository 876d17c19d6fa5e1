package repotype

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	orgRepoTypeStringConstant       = "org"
	apiRepoTypeStringConstant       = "api"
	frontendRepoTypeStringConstant  = "frontend"
	contractsRepoTypeStringConstant = "contracts"

	artisanMarkerFileNameConstant    = "artisan"
	composerManifestFileNameConstant = "composer.json"
	nodeManifestFileNameConstant     = "package.json"
	laravelFrameworkPackageConstant  = "laravel/framework"
	vitePackageSubstringConstant     = "vite"
	openAPIPackageSubstringConstant  = "openapi"
	redoclyPackageSubstringConstant  = "redocly"
	swaggerPackageSubstringConstant  = "swagger"
)

// RepoType identifies a repository archetype used to select compliance checks and tracked files.
type RepoType string

// Supported repository archetypes.
const (
	RepoTypeOrg       RepoType = RepoType(orgRepoTypeStringConstant)
	RepoTypeApi       RepoType = RepoType(apiRepoTypeStringConstant)
	RepoTypeFrontend  RepoType = RepoType(frontendRepoTypeStringConstant)
	RepoTypeContracts RepoType = RepoType(contractsRepoTypeStringConstant)
)

// ParseRepoType resolves a textual archetype name, reporting whether it is recognized.
func ParseRepoType(candidateValue string) (RepoType, bool) {
	switch RepoType(strings.ToLower(strings.TrimSpace(candidateValue))) {
	case RepoTypeOrg:
		return RepoTypeOrg, true
	case RepoTypeApi:
		return RepoTypeApi, true
	case RepoTypeFrontend:
		return RepoTypeFrontend, true
	case RepoTypeContracts:
		return RepoTypeContracts, true
	}
	return RepoTypeOrg, false
}

type composerManifest struct {
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

type nodeManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Detect classifies the repository rooted at rootPath.
//
// Precedence is fixed and order-independent with respect to which markers
// coexist on disk, highest first:
//
//  1. an artisan entry point or a composer.json requiring laravel/framework → api
//  2. a package.json declaring an OpenAPI-related dependency → contracts
//  3. a package.json declaring a Vite-related dependency → frontend
//  4. none of the above → org
//
// Detect never fails: a missing or malformed marker file is a negative
// signal, not an error. The result is derived purely from filesystem
// contents at invocation time and is never cached.
func Detect(rootPath string) RepoType {
	if hasLaravelMarkers(rootPath) {
		return RepoTypeApi
	}

	nodeDependencyNames := collectNodeDependencyNames(rootPath)
	if anyNameContains(nodeDependencyNames, openAPIPackageSubstringConstant, redoclyPackageSubstringConstant, swaggerPackageSubstringConstant) {
		return RepoTypeContracts
	}
	if anyNameContains(nodeDependencyNames, vitePackageSubstringConstant) {
		return RepoTypeFrontend
	}

	return RepoTypeOrg
}

// DetectWithOverride applies a classification override with strict precedence
// over filesystem detection; an empty or unrecognized override falls through
// to Detect.
func DetectWithOverride(rootPath string, overrideValue string) RepoType {
	if overriddenType, recognized := ParseRepoType(overrideValue); recognized {
		return overriddenType
	}
	return Detect(rootPath)
}

func hasLaravelMarkers(rootPath string) bool {
	if markerInfo, statError := os.Stat(filepath.Join(rootPath, artisanMarkerFileNameConstant)); statError == nil && !markerInfo.IsDir() {
		return true
	}

	manifestContents, readError := os.ReadFile(filepath.Join(rootPath, composerManifestFileNameConstant))
	if readError != nil {
		return false
	}

	var manifest composerManifest
	if unmarshalError := json.Unmarshal(manifestContents, &manifest); unmarshalError != nil {
		return false
	}

	if _, required := manifest.Require[laravelFrameworkPackageConstant]; required {
		return true
	}
	if _, requiredDev := manifest.RequireDev[laravelFrameworkPackageConstant]; requiredDev {
		return true
	}
	return false
}

func collectNodeDependencyNames(rootPath string) []string {
	manifestContents, readError := os.ReadFile(filepath.Join(rootPath, nodeManifestFileNameConstant))
	if readError != nil {
		return nil
	}

	var manifest nodeManifest
	if unmarshalError := json.Unmarshal(manifestContents, &manifest); unmarshalError != nil {
		return nil
	}

	var dependencyNames []string
	for dependencyName := range manifest.Dependencies {
		dependencyNames = append(dependencyNames, strings.ToLower(dependencyName))
	}
	for dependencyName := range manifest.DevDependencies {
		dependencyNames = append(dependencyNames, strings.ToLower(dependencyName))
	}
	return dependencyNames
}

func anyNameContains(dependencyNames []string, substrings ...string) bool {
	for _, dependencyName := range dependencyNames {
		for _, substring := range substrings {
			if strings.Contains(dependencyName, substring) {
				return true
			}
		}
	}
	return false
}
