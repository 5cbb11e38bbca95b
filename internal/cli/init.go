package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	Account  string `yaml:"account,omitempty"`
	Sync     string `yaml:"sync,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize catalog storage",
		Long:  "Create the configuration and data directories, write a default\nconfig.yaml if none exists, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := paths.ConfigFile(a.configDir)
	written, err := writeConfigIfMissing(configPath, configFile{
		Backend:  a.settings.Backend,
		DataDir:  a.flags.dataDir,
		LogLevel: a.settings.LogLevel,
		Account:  a.settings.Account,
	})
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if written {
		a.log.Info("wrote default config", zap.String("path", configPath))
	}

	// Attach and detach once to create the data directory and its files.
	if err := a.withStore(func(store.Store) error { return nil }); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Catalog initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. If it already exists, the function leaves it untouched and reports
// false.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
