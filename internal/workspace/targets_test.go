package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SecPal/governance/internal/workspace"
)

func createRepository(testInstance *testing.T, workspaceRoot string, repositoryName string) string {
	testInstance.Helper()
	repositoryPath := filepath.Join(workspaceRoot, repositoryName)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repositoryPath, ".git"), 0o755))
	return repositoryPath
}

func TestDiscoverTargets(testInstance *testing.T) {
	workspaceRoot := testInstance.TempDir()

	createRepository(testInstance, workspaceRoot, ".github")
	apiPath := createRepository(testInstance, workspaceRoot, "api")
	frontendPath := createRepository(testInstance, workspaceRoot, "frontend")
	createRepository(testInstance, workspaceRoot, "sandbox")

	// Directories without git metadata are not sync targets.
	require.NoError(testInstance, os.MkdirAll(filepath.Join(workspaceRoot, "notes"), 0o755))

	discoverer := workspace.NewFilesystemTargetDiscoverer()
	targetPaths, discoveryError := discoverer.DiscoverTargets(workspaceRoot, ".github", []string{"sandbox"})
	require.NoError(testInstance, discoveryError)
	require.Equal(testInstance, []string{apiPath, frontendPath}, targetPaths)
}

func TestDiscoverTargetsMissingRoot(testInstance *testing.T) {
	discoverer := workspace.NewFilesystemTargetDiscoverer()
	_, discoveryError := discoverer.DiscoverTargets(filepath.Join(testInstance.TempDir(), "absent"), ".github", nil)
	require.Error(testInstance, discoveryError)
}
