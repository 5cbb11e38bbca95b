package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

// Get retrieves a document by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) Get(id string) (store.Document, error) {
	if id == "" {
		return store.Document{}, store.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return store.Document{}, store.ErrStoreDetached
	}
	if b.undecodable[id] {
		return store.Document{}, fmt.Errorf("%w: %s", store.ErrUndecodable, id)
	}

	var body string
	err := b.db.QueryRow("SELECT body FROM documents WHERE id = ?", id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, fmt.Errorf("getting document %s: %w", id, err)
	}
	doc, err := catalog.DecodeDocument[string, string]([]byte(body))
	if err != nil {
		return store.Document{}, fmt.Errorf("decoding document %s: %w", id, err)
	}
	return doc, nil
}

// Put stores object for account under id, generating a UUID v7 when id is
// empty. See store.Store for the version and created_at rules.
func (b *Backend) Put(id, account string, object store.Object) (store.Document, error) {
	if object.IsZero() {
		return store.Document{}, fmt.Errorf("%w: %w", store.ErrInvalidObject, catalog.ErrEmptyObject)
	}
	if account == "" {
		return store.Document{}, store.ErrInvalidAccount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return store.Document{}, store.ErrStoreDetached
	}
	if b.undecodable[id] {
		return store.Document{}, fmt.Errorf("%w: %s", store.ErrUndecodable, id)
	}

	version := catalog.Version(1)
	createdAt, err := catalog.NewTimestamp(b.now())
	if err != nil {
		return store.Document{}, err
	}

	if id == "" {
		if id, err = b.newID(); err != nil {
			return store.Document{}, err
		}
	} else {
		prev, found, err := b.lookupLocked(id)
		if err != nil {
			return store.Document{}, err
		}
		if found {
			if prev.account != account {
				return store.Document{}, fmt.Errorf("%w: %s", store.ErrAccountMismatch, id)
			}
			next, ok := prev.version.Next()
			if !ok {
				return store.Document{}, fmt.Errorf("%w: %s", store.ErrVersionOverflow, id)
			}
			version = next
			createdAt = prev.createdAt
		}
	}

	doc, err := catalog.NewDocument(id, account, version, createdAt, object)
	if err != nil {
		return store.Document{}, fmt.Errorf("%w: %w", store.ErrInvalidObject, err)
	}
	err = b.writeLocked(func(tx *sql.Tx) error {
		return upsertDocument(tx, doc)
	})
	if err != nil {
		if isEncodeError(err) {
			return store.Document{}, fmt.Errorf("%w: %w", store.ErrInvalidObject, err)
		}
		return store.Document{}, err
	}

	b.log.Debug("put document",
		zap.String("id", id),
		zap.String("type", string(doc.Object.Type())),
		zap.Uint16("version", uint16(doc.Version)),
	)
	return doc, nil
}

// Delete removes a document by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (b *Backend) Delete(id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return store.ErrStoreDetached
	}
	if b.undecodable[id] {
		return fmt.Errorf("%w: %s", store.ErrUndecodable, id)
	}

	err := b.writeLocked(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM documents WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting document %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting document %s: %w", id, err)
		}
		if n == 0 {
			return store.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.log.Debug("deleted document", zap.String("id", id))
	return nil
}

// Fetch returns the documents matching filter ordered by created_at, then
// id. Returns ErrInvalidFilter if filter.Type is not a known variant.
func (b *Backend) Fetch(filter store.Filter) ([]store.Document, error) {
	if filter.Type != "" {
		if _, err := catalog.ParseObjectType(string(filter.Type)); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrInvalidFilter, err)
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, store.ErrStoreDetached
	}

	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Account != "" {
		where = append(where, "account = ?")
		args = append(args, filter.Account)
	}
	if filter.ItemID != "" {
		where = append(where, "item_id = ?")
		args = append(args, filter.ItemID)
	}

	query := "SELECT body FROM documents"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching documents: %w", err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc, err := catalog.DecodeDocument[string, string]([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// storedHeader is the part of a stored row that Put needs to advance it.
type storedHeader struct {
	account   string
	version   catalog.Version
	createdAt catalog.Timestamp
}

func (b *Backend) lookupLocked(id string) (storedHeader, bool, error) {
	var (
		h                  storedHeader
		version, createdAt int64
	)
	err := b.db.QueryRow(
		"SELECT account, version, created_at FROM documents WHERE id = ?", id,
	).Scan(&h.account, &version, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storedHeader{}, false, nil
	}
	if err != nil {
		return storedHeader{}, false, fmt.Errorf("checking document existence: %w", err)
	}
	h.version = catalog.Version(version)
	h.createdAt = catalog.Timestamp(createdAt)
	return h, true, nil
}

// selectBodies returns every stored document body in JSONL order.
func selectBodies(q queryer) ([]json.RawMessage, error) {
	rows, err := q.Query("SELECT body FROM documents ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("selecting documents: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		records = append(records, json.RawMessage(body))
	}
	return records, rows.Err()
}

// itemRefVisitor extracts the item_id column value.
type itemRefVisitor struct {
	ref sql.NullString
}

func (v *itemRefVisitor) VisitItem(catalog.Item) error { return nil }

func (v *itemRefVisitor) VisitVariation(iv catalog.ItemVariation[string]) error {
	v.ref = sql.NullString{String: iv.ItemID, Valid: true}
	return nil
}

func (v *itemRefVisitor) VisitModification(m catalog.ItemModification[string]) error {
	v.ref = sql.NullString{String: m.ItemID, Valid: true}
	return nil
}

// itemRef returns the item a variation or modification points at, or NULL
// for an item.
func itemRef(obj store.Object) sql.NullString {
	var v itemRefVisitor
	_ = obj.Visit(&v)
	return v.ref
}

// isEncodeError reports whether err came from encoding the document rather
// than from SQLite.
func isEncodeError(err error) bool {
	for _, target := range []error{
		catalog.ErrUnknownVariant,
		catalog.ErrMalformedField,
		catalog.ErrMissingField,
		catalog.ErrEmptyObject,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
