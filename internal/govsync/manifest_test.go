package govsync_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SecPal/governance/internal/govsync"
)

func TestLoadManifestFallsBackToDefaults(testInstance *testing.T) {
	manifest, loadError := govsync.LoadManifest(filepath.Join(testInstance.TempDir(), "governance.yaml"))

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, govsync.DefaultManifest(), manifest)
	require.Equal(testInstance, ".github", manifest.Source)
	require.Contains(testInstance, manifest.Files, "CONTRIBUTING.md")
	require.Contains(testInstance, manifest.Files, "CONTRIBUTING.md.license")
}

func TestLoadManifestParsesDeclaredFields(testInstance *testing.T) {
	manifestPath := filepath.Join(testInstance.TempDir(), "governance.yaml")
	manifestDocument := "source: canonical\nfiles:\n  - SECURITY.md\n  - SECURITY.md.license\nexclude:\n  - sandbox\n"
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(manifestDocument), 0o644))

	manifest, loadError := govsync.LoadManifest(manifestPath)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "canonical", manifest.Source)
	require.Equal(testInstance, []string{"SECURITY.md", "SECURITY.md.license"}, manifest.Files)
	require.Equal(testInstance, []string{"sandbox"}, manifest.Exclude)
}

func TestLoadManifestDefaultsOmittedSource(testInstance *testing.T) {
	manifestPath := filepath.Join(testInstance.TempDir(), "governance.yaml")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("files:\n  - SECURITY.md\n"), 0o644))

	manifest, loadError := govsync.LoadManifest(manifestPath)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, ".github", manifest.Source)
}

func TestLoadManifestRejectsInvalidDocuments(testInstance *testing.T) {
	testCases := []struct {
		name             string
		manifestDocument string
	}{
		{name: "missing files list", manifestDocument: "source: .github\n"},
		{name: "empty files list", manifestDocument: "files: []\n"},
		{name: "unknown property", manifestDocument: "files:\n  - SECURITY.md\ntargets:\n  - service\n"},
		{name: "non string file entry", manifestDocument: "files:\n  - 42\n"},
		{name: "malformed yaml", manifestDocument: "files: [unterminated\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			manifestPath := filepath.Join(subtest.TempDir(), "governance.yaml")
			require.NoError(subtest, os.WriteFile(manifestPath, []byte(testCase.manifestDocument), 0o644))

			_, loadError := govsync.LoadManifest(manifestPath)

			require.Error(subtest, loadError)
			require.Contains(subtest, loadError.Error(), manifestPath)
		})
	}
}
