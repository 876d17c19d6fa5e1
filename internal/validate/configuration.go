package validate

const (
	licenseIdentifierConfigurationKeyConstant = "license_identifier"
	toolTimeoutConfigurationKeyConstant       = "tool_timeout_seconds"
	repositoryTypeConfigurationKeyConstant    = "repo_type"
	configurationKeySeparatorConstant         = "."

	defaultToolTimeoutSecondsConstant = 30
)

// CommandConfiguration describes configuration values for the validate command.
type CommandConfiguration struct {
	LicenseIdentifier  string `mapstructure:"license_identifier"`
	ToolTimeoutSeconds int    `mapstructure:"tool_timeout_seconds"`
	RepositoryType     string `mapstructure:"repo_type"`
}

// DefaultCommandConfiguration returns baseline configuration values for validate.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		LicenseIdentifier:  defaultExpectedLicenseIdentifierValue,
		ToolTimeoutSeconds: defaultToolTimeoutSecondsConstant,
		RepositoryType:     "",
	}
}

// DefaultConfigurationValues produces Viper defaults for the validate command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + licenseIdentifierConfigurationKeyConstant: defaults.LicenseIdentifier,
		rootKey + configurationKeySeparatorConstant + toolTimeoutConfigurationKeyConstant:       defaults.ToolTimeoutSeconds,
		rootKey + configurationKeySeparatorConstant + repositoryTypeConfigurationKeyConstant:    defaults.RepositoryType,
	}
}
