package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const gitMetadataDirectoryNameConstant = ".git"

// FilesystemTargetDiscoverer locates target repositories on disk.
type FilesystemTargetDiscoverer struct{}

// NewFilesystemTargetDiscoverer constructs a discoverer backed by os.ReadDir.
func NewFilesystemTargetDiscoverer() *FilesystemTargetDiscoverer {
	return &FilesystemTargetDiscoverer{}
}

// DiscoverTargets lists immediate subdirectories of workspaceRoot that contain
// a .git entry, excluding the canonical source directory and any explicitly
// excluded names. Results are sorted and deduplicated.
func (discoverer *FilesystemTargetDiscoverer) DiscoverTargets(workspaceRoot string, sourceDirectoryName string, excludedNames []string) ([]string, error) {
	directoryEntries, readError := os.ReadDir(workspaceRoot)
	if readError != nil {
		return nil, readError
	}

	excludedLookup := make(map[string]struct{}, len(excludedNames)+1)
	excludedLookup[strings.TrimSpace(sourceDirectoryName)] = struct{}{}
	for _, excludedName := range excludedNames {
		excludedLookup[strings.TrimSpace(excludedName)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var targetPaths []string
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		if _, excluded := excludedLookup[directoryEntry.Name()]; excluded {
			continue
		}

		candidatePath := filepath.Join(workspaceRoot, directoryEntry.Name())
		if _, statError := os.Stat(filepath.Join(candidatePath, gitMetadataDirectoryNameConstant)); statError != nil {
			continue
		}

		if _, alreadySeen := seen[candidatePath]; alreadySeen {
			continue
		}
		seen[candidatePath] = struct{}{}
		targetPaths = append(targetPaths, candidatePath)
	}

	sort.Strings(targetPaths)
	return targetPaths, nil
}
