// Package sqlite provides the public API for the SQLite catalog store.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/internal/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

// NewBackend creates a new SQLite backend instance. A nil logger disables
// logging. The backend is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	backend := sqlite.NewBackend(logger)
//	err := backend.Attach(store.Config{
//	    Backend: store.BackendSQLite,
//	    DataDir: ".catalog-db",
//	})
//	defer backend.Detach()
func NewBackend(logger *zap.Logger) store.Store {
	return sqlite.NewBackend(logger)
}
