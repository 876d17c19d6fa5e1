package govsync_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/SecPal/governance/internal/govsync"
)

func buildSyncCommand(testInstance *testing.T) (*cobra.Command, *bytes.Buffer) {
	testInstance.Helper()

	builder := &govsync.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	return command, outputBuffer
}

// prepareWorkspace lays out a workspace root with a canonical .github source
// repository, a governance manifest, and two target repositories, one of them
// drifted by a single byte.
func prepareWorkspace(testInstance *testing.T) string {
	testInstance.Helper()
	workspaceRoot := testInstance.TempDir()

	sourceRoot := filepath.Join(workspaceRoot, ".github")
	writeWorkspaceFile(testInstance, filepath.Join(sourceRoot, "CONTRIBUTING.md"), contributingDocumentContents)
	writeWorkspaceFile(testInstance, filepath.Join(sourceRoot, "SECURITY.md"), securityDocumentContents)
	manifestDocument := "source: .github\nfiles:\n  - CONTRIBUTING.md\n  - SECURITY.md\n"
	writeWorkspaceFile(testInstance, filepath.Join(sourceRoot, "governance.yaml"), manifestDocument)

	for _, targetName := range []string{"service", "frontend"} {
		targetPath := filepath.Join(workspaceRoot, targetName)
		require.NoError(testInstance, os.MkdirAll(filepath.Join(targetPath, ".git"), 0o755))
		writeWorkspaceFile(testInstance, filepath.Join(targetPath, "CONTRIBUTING.md"), contributingDocumentContents)
		writeWorkspaceFile(testInstance, filepath.Join(targetPath, "SECURITY.md"), securityDocumentContents)
	}

	driftedPath := filepath.Join(workspaceRoot, "service", "SECURITY.md")
	writeWorkspaceFile(testInstance, driftedPath, securityDocumentContents+"!")

	return workspaceRoot
}

func TestCommandCheckThenSyncThenCheck(testInstance *testing.T) {
	workspaceRoot := prepareWorkspace(testInstance)

	checkCommand, checkOutput := buildSyncCommand(testInstance)
	checkCommand.SetArgs([]string{workspaceRoot, "--check"})
	require.ErrorIs(testInstance, checkCommand.Execute(), govsync.ErrDriftDetected)
	require.Contains(testInstance, checkOutput.String(), "outdated")

	syncCommand, syncOutput := buildSyncCommand(testInstance)
	syncCommand.SetArgs([]string{workspaceRoot})
	require.NoError(testInstance, syncCommand.Execute())
	require.Contains(testInstance, syncOutput.String(), "updated")

	repairedCommand, repairedOutput := buildSyncCommand(testInstance)
	repairedCommand.SetArgs([]string{workspaceRoot, "--check"})
	require.NoError(testInstance, repairedCommand.Execute())
	require.Contains(testInstance, repairedOutput.String(), "0 outdated, 0 missing")

	repairedContents, readError := os.ReadFile(filepath.Join(workspaceRoot, "service", "SECURITY.md"))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, securityDocumentContents, string(repairedContents))
}

func TestCommandCheckDoesNotModifyTargets(testInstance *testing.T) {
	workspaceRoot := prepareWorkspace(testInstance)
	driftedPath := filepath.Join(workspaceRoot, "service", "SECURITY.md")

	command, _ := buildSyncCommand(testInstance)
	command.SetArgs([]string{workspaceRoot, "--check"})
	require.ErrorIs(testInstance, command.Execute(), govsync.ErrDriftDetected)

	driftedContents, readError := os.ReadFile(driftedPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, securityDocumentContents+"!", string(driftedContents))
}

func TestCommandSyncIsIdempotent(testInstance *testing.T) {
	workspaceRoot := prepareWorkspace(testInstance)

	firstCommand, _ := buildSyncCommand(testInstance)
	firstCommand.SetArgs([]string{workspaceRoot})
	require.NoError(testInstance, firstCommand.Execute())

	secondCommand, secondOutput := buildSyncCommand(testInstance)
	secondCommand.SetArgs([]string{workspaceRoot})
	require.NoError(testInstance, secondCommand.Execute())
	require.Contains(testInstance, secondOutput.String(), "0 created, 0 updated")
}

func TestCommandSyncRendersPlanWarnings(testInstance *testing.T) {
	workspaceRoot := testInstance.TempDir()
	writeWorkspaceFile(testInstance, filepath.Join(workspaceRoot, ".github", "CONTRIBUTING.md"), contributingDocumentContents)
	require.NoError(testInstance, os.MkdirAll(filepath.Join(workspaceRoot, "service", ".git"), 0o755))

	command, outputBuffer := buildSyncCommand(testInstance)
	command.SetArgs([]string{workspaceRoot})
	require.NoError(testInstance, command.Execute())

	renderedOutput := outputBuffer.String()
	require.Contains(testInstance, renderedOutput, "[warn] source file SECURITY.md unreadable")
	require.Contains(testInstance, renderedOutput, "excluded from plan")
	require.Contains(testInstance, renderedOutput, "1 repositories: 1 created, 0 updated, 0 unchanged, 0 failed, 7 warnings")
}

func TestCommandRejectsInvalidManifest(testInstance *testing.T) {
	workspaceRoot := prepareWorkspace(testInstance)
	manifestPath := filepath.Join(workspaceRoot, ".github", "governance.yaml")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("files: []\n"), 0o644))

	command, _ := buildSyncCommand(testInstance)
	command.SetArgs([]string{workspaceRoot})
	require.Error(testInstance, command.Execute())
}

func TestCommandManifestFlagOverridesDefaultLocation(testInstance *testing.T) {
	workspaceRoot := prepareWorkspace(testInstance)
	overridePath := filepath.Join(testInstance.TempDir(), "alternate.yaml")
	require.NoError(testInstance, os.WriteFile(overridePath, []byte("files:\n  - CONTRIBUTING.md\n"), 0o644))

	command, outputBuffer := buildSyncCommand(testInstance)
	command.SetArgs([]string{workspaceRoot, "--check", "--manifest", overridePath})

	require.NoError(testInstance, command.Execute(), "the drifted SECURITY.md is not tracked by the override manifest")
	require.NotContains(testInstance, outputBuffer.String(), "SECURITY.md")
}
