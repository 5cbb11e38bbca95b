// Package sqlite implements the SQLite storage backend for catalog
// documents. SQLite is the query engine; documents.jsonl in DataDir is the
// source of truth and holds one wire-format document per line.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/catalog/pkg/store"
)

// File names inside DataDir.
const (
	dbFileName     = "catalog.db"
	documentsJSONL = "documents.jsonl"
)

// Compile-time interface check.
var _ store.Store = (*Backend)(nil)

// Backend implements store.Store using SQLite as the query engine and
// documents.jsonl as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   store.Config
	db       *sql.DB
	log      *zap.Logger

	// dirty is set when documents.jsonl lags behind SQLite under the
	// on_close sync strategy.
	dirty bool

	// preserved holds the lines of documents.jsonl that did not decode, in
	// file order; undecodable indexes their ids.
	preserved   []preservedLine
	undecodable map[string]bool

	now   func() time.Time
	newID func() (string, error)
}

// NewBackend creates a new SQLite backend instance. A nil logger disables
// logging. The backend is not attached; call Attach with a Config to
// initialize.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{
		log:   logger.Named("sqlite"),
		now:   time.Now,
		newID: generateUUID,
	}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite database and
// loads documents.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config store.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return store.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database is a cache of documents.jsonl and is rebuilt on every attach.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	jsonlPath := filepath.Join(dataDir, documentsJSONL)
	if err := ensureJSONL(jsonlPath); err != nil {
		db.Close()
		return err
	}
	result, err := loadDocumentsJSONL(db, jsonlPath, b.log)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dirty = false
	b.preserved = result.preserved
	b.undecodable = make(map[string]bool, len(result.preserved))
	for _, l := range result.preserved {
		if l.id != "" {
			b.undecodable[l.id] = true
		}
	}
	b.attached = true

	b.log.Info("attached",
		zap.String("data_dir", dataDir),
		zap.String("sync", config.SyncStrategy()),
		zap.Int("documents", result.loaded),
		zap.Int("preserved", len(result.preserved)),
	)
	return nil
}

// Detach releases all resources held by the backend. Under the on_close
// strategy pending changes are written to documents.jsonl first.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.dirty {
		if err := b.writeJSONLLocked(b.db); err != nil {
			return fmt.Errorf("flush pending writes: %w", err)
		}
	}

	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.preserved = nil
	b.undecodable = nil
	b.attached = false

	b.log.Info("detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

// writeLocked runs apply in a transaction and records the result in
// documents.jsonl according to the sync strategy before committing. If the
// JSONL write fails the transaction is rolled back, so SQLite never holds a
// change the file does not. The caller must hold b.mu for writing.
func (b *Backend) writeLocked(apply func(tx *sql.Tx) error) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning write: %w", err)
	}
	defer tx.Rollback()

	if err := apply(tx); err != nil {
		return err
	}
	if b.config.SyncStrategy() == store.SyncOnClose {
		b.dirty = true
	} else if err := b.writeJSONLLocked(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing write: %w", err)
	}
	return nil
}

// writeJSONLLocked rewrites documents.jsonl from the rows visible to q,
// followed by the preserved lines in their original order.
func (b *Backend) writeJSONLLocked(q queryer) error {
	records, err := selectBodies(q)
	if err != nil {
		return err
	}
	for _, l := range b.preserved {
		records = append(records, json.RawMessage(l.data))
	}
	if err := writeJSONL(filepath.Join(b.config.DataDir, documentsJSONL), records); err != nil {
		return fmt.Errorf("persisting %s: %w", documentsJSONL, err)
	}
	b.dirty = false
	b.log.Debug("wrote documents.jsonl", zap.Int("documents", len(records)))
	return nil
}

// generateUUID generates a new UUID v7 for document IDs.
func generateUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
