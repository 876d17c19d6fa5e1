package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/SecPal/governance/internal/govsync"
	"github.com/SecPal/governance/internal/validate"
)

func applicationForTesting(testInstance *testing.T, arguments ...string) (*Application, *bytes.Buffer) {
	testInstance.Helper()

	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs(arguments)
	return application, outputBuffer
}

func TestNewApplicationRegistersSubcommands(testInstance *testing.T) {
	application := NewApplication()

	registeredNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredNames[registeredCommand.Name()] = true
	}

	require.True(testInstance, registeredNames["validate"])
	require.True(testInstance, registeredNames["sync"])
}

func TestApplicationShowsHelpWithoutArguments(testInstance *testing.T) {
	application, outputBuffer := applicationForTesting(testInstance)

	require.NoError(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), "validate")
	require.Contains(testInstance, outputBuffer.String(), "sync")
}

func TestApplicationValidateExitSemantics(testInstance *testing.T) {
	emptyRepositoryRoot := testInstance.TempDir()

	application, _ := applicationForTesting(testInstance, "validate", emptyRepositoryRoot)

	require.ErrorIs(testInstance, application.Execute(), validate.ErrComplianceFailed)
}

func TestApplicationSyncCheckDetectsDrift(testInstance *testing.T) {
	workspaceRoot := testInstance.TempDir()
	sourceRoot := filepath.Join(workspaceRoot, ".github")
	require.NoError(testInstance, os.MkdirAll(sourceRoot, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(sourceRoot, "SECURITY.md"), []byte("canonical\n"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(sourceRoot, "governance.yaml"), []byte("files:\n  - SECURITY.md\n"), 0o644))

	targetPath := filepath.Join(workspaceRoot, "service")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(targetPath, ".git"), 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(targetPath, "SECURITY.md"), []byte("drifted\n"), 0o644))

	checkApplication, _ := applicationForTesting(testInstance, "sync", "--check", workspaceRoot)
	require.ErrorIs(testInstance, checkApplication.Execute(), govsync.ErrDriftDetected)

	syncApplication, _ := applicationForTesting(testInstance, "sync", workspaceRoot)
	require.NoError(testInstance, syncApplication.Execute())

	repairedApplication, _ := applicationForTesting(testInstance, "sync", "--check", workspaceRoot)
	require.NoError(testInstance, repairedApplication.Execute())
}

func decodeConfigurationValues(testInstance *testing.T, values map[string]any, target any) {
	testInstance.Helper()

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: target})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(values))
}

func TestApplicationConfigurationDecodesTaggedKeys(testInstance *testing.T) {
	configurationValues := map[string]any{
		"common": map[string]any{
			"log_level":  "debug",
			"log_format": "json",
		},
		"tools": map[string]any{
			"validate": map[string]any{
				"license_identifier":   "MIT",
				"tool_timeout_seconds": 5,
				"repo_type":            "api",
			},
			"sync": map[string]any{
				"manifest": "custom/governance.yaml",
				"workers":  2,
			},
		},
	}

	var configuration ApplicationConfiguration
	decodeConfigurationValues(testInstance, configurationValues, &configuration)

	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "json", configuration.Common.LogFormat)
	require.Equal(testInstance, "MIT", configuration.Tools.Validate.LicenseIdentifier)
	require.Equal(testInstance, 5, configuration.Tools.Validate.ToolTimeoutSeconds)
	require.Equal(testInstance, "api", configuration.Tools.Validate.RepositoryType)
	require.Equal(testInstance, "custom/governance.yaml", configuration.Tools.Sync.ManifestPath)
	require.Equal(testInstance, 2, configuration.Tools.Sync.Workers)
}

func TestApplicationRejectsUnknownLogLevel(testInstance *testing.T) {
	application, _ := applicationForTesting(testInstance, "validate", testInstance.TempDir(), "--log-level", "verbose")

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unsupported log level")
}
