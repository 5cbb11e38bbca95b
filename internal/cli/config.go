package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/catalog/internal/logging"
	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// Config keys.
	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyLogLevel = "log_level"
	cfgKeyAccount  = "account"
	cfgKeySync     = "sync"

	envPrefix = "CATALOG"
)

// settings is the resolved content of config.yaml.
type settings struct {
	Backend  string
	DataDir  string
	LogLevel string
	Account  string
	Sync     string
}

// loadSettings reads config.yaml from configDir using Viper. A missing file
// is not an error. CATALOG_BACKEND, CATALOG_LOG_LEVEL, CATALOG_ACCOUNT and
// CATALOG_SYNC override the file; data_dir is resolved by paths instead.
func loadSettings(configDir string) (settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, store.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeySync, store.SyncImmediate)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyLogLevel, cfgKeyAccount, cfgKeySync} {
		if err := v.BindEnv(key); err != nil {
			return settings{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read %s: %w", paths.ConfigFile(configDir), err)
		}
	}

	return settings{
		Backend:  v.GetString(cfgKeyBackend),
		DataDir:  v.GetString(cfgKeyDataDir),
		LogLevel: v.GetString(cfgKeyLogLevel),
		Account:  v.GetString(cfgKeyAccount),
		Sync:     v.GetString(cfgKeySync),
	}, nil
}
