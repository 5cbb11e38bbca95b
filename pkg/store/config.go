package store

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	Sync    string `json:"sync,omitempty" yaml:"sync,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sync strategies control when documents.jsonl is rewritten.
const (
	SyncImmediate = "immediate" // after every write (default)
	SyncOnClose   = "on_close"  // once, on Detach
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownSyncStrategies = map[string]bool{
	"":            true,
	SyncImmediate: true,
	SyncOnClose:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownSyncStrategies[c.Sync] {
		return ErrSyncStrategyUnknown
	}
	return nil
}

// SyncStrategy returns the effective sync strategy, defaulting to
// SyncImmediate.
func (c Config) SyncStrategy() string {
	if c.Sync == "" {
		return SyncImmediate
	}
	return c.Sync
}
