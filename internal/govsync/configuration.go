package govsync

const (
	manifestConfigurationKeyConstant  = "manifest"
	workersConfigurationKeyConstant   = "workers"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration describes configuration values for the sync command.
type CommandConfiguration struct {
	ManifestPath string `mapstructure:"manifest"`
	Workers      int    `mapstructure:"workers"`
}

// DefaultCommandConfiguration returns baseline configuration values for sync.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ManifestPath: "",
		Workers:      defaultWorkerLimitConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the sync command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + manifestConfigurationKeyConstant: defaults.ManifestPath,
		rootKey + configurationKeySeparatorConstant + workersConfigurationKeyConstant:  defaults.Workers,
	}
}
