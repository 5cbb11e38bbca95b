// Shared helpers for catalog CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/pkg/catalog"
	"github.com/mesh-intelligence/catalog/pkg/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

// userErrors are the failures caused by the command's input or by the state
// of the catalog rather than by the system.
var userErrors = []error{
	store.ErrNotFound,
	store.ErrInvalidID,
	store.ErrInvalidAccount,
	store.ErrInvalidObject,
	store.ErrInvalidFilter,
	store.ErrAccountMismatch,
	store.ErrVersionOverflow,
	store.ErrUndecodable,
	store.ErrBackendEmpty,
	store.ErrBackendUnknown,
	store.ErrSyncStrategyUnknown,
	catalog.ErrUnknownVariant,
	catalog.ErrMalformedField,
	catalog.ErrMissingField,
	catalog.ErrMalformedDocument,
	catalog.ErrEmptyObject,
}

// classify wraps err with the exit code it maps to.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *exitError
	if errors.As(err, &e) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// withStore attaches the configured backend, runs fn and detaches. Errors
// from fn and from Detach are classified for the exit code.
func (a *app) withStore(fn func(store.Store) error) error {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.settings.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	backend := sqlite.NewBackend(a.log)
	cfg := store.Config{
		Backend: a.settings.Backend,
		DataDir: dataDir,
		Sync:    a.settings.Sync,
	}
	if err := backend.Attach(cfg); err != nil {
		return classify(fmt.Errorf("attach backend: %w", err))
	}

	runErr := fn(backend)
	if err := backend.Detach(); err != nil && runErr == nil {
		runErr = fmt.Errorf("detach backend: %w", err)
	}
	return classify(runErr)
}

// readInput returns the content of the named file, or of stdin when name is
// "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, sysError(fmt.Errorf("read stdin: %w", err))
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, userError(fmt.Errorf("read %s: %w", name, err))
		}
		return nil, sysError(fmt.Errorf("read %s: %w", name, err))
	}
	return data, nil
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return classify(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// errorKind names the catalog error category of err, or "" if err carries
// none. Document failures report the inner cause.
func errorKind(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnknownVariant):
		return "unknown variant"
	case errors.Is(err, catalog.ErrMissingField):
		return "missing field"
	case errors.Is(err, catalog.ErrMalformedField):
		return "malformed field"
	case errors.Is(err, catalog.ErrEmptyObject):
		return "empty object"
	case errors.Is(err, catalog.ErrMalformedDocument):
		return "malformed document"
	default:
		return ""
	}
}
