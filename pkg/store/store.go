package store

import (
	"errors"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
)

// Store persists catalog documents by ID.
type Store interface {
	// Attach connects the store to the backend described by config.
	// Creates DataDir if it does not exist. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach flushes pending writes and releases backend resources.
	// Idempotent. After Detach, operations return ErrStoreDetached.
	Detach() error

	// Get returns the document with the given ID.
	// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
	Get(id string) (Document, error)

	// Put stores object for account. An empty id creates a new document
	// with a generated UUID v7, version 1 and created_at set to now. An id
	// that already exists replaces the object, keeps created_at and
	// advances the version; the account must match the stored one.
	// A non-empty id that does not exist is created with that id.
	Put(id, account string, object Object) (Document, error)

	// Delete removes the document with the given ID.
	// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
	Delete(id string) error

	// Fetch returns every document matching filter, oldest first.
	// The zero Filter matches all documents. Stored records that do not
	// decode are kept untouched but never returned; Get, Put and Delete on
	// their IDs return ErrUndecodable.
	Fetch(filter Filter) ([]Document, error)
}

// Filter narrows Fetch. Empty fields match everything.
type Filter struct {
	Type    catalog.ObjectType // Envelope variant.
	Account string             // Owning account.
	ItemID  string             // Item referenced by a variation or modification.
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Document operation errors.
var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidID       = errors.New("invalid document ID")
	ErrInvalidAccount  = errors.New("account must not be empty")
	ErrInvalidObject   = errors.New("invalid catalog object")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrAccountMismatch = errors.New("document belongs to another account")
	ErrVersionOverflow = errors.New("document version exhausted")
	ErrUndecodable     = errors.New("document is stored in a form this build cannot decode")
)
