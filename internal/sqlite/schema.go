package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. body holds the full wire-format document; the other columns
// are extracted from it for filtering and ordering.
const (
	createDocuments = `CREATE TABLE documents (
    id TEXT PRIMARY KEY,
    account TEXT NOT NULL,
    version INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    type TEXT NOT NULL,
    item_id TEXT,
    body TEXT NOT NULL
);`

	idxDocumentsAccount = `CREATE INDEX idx_documents_account ON documents(account);`
	idxDocumentsType    = `CREATE INDEX idx_documents_type ON documents(type);`
	idxDocumentsItem    = `CREATE INDEX idx_documents_item ON documents(item_id);`
	idxDocumentsCreated = `CREATE INDEX idx_documents_created ON documents(created_at, id);`
)

var schemaDDL = []string{
	createDocuments,
	idxDocumentsAccount,
	idxDocumentsType,
	idxDocumentsItem,
	idxDocumentsCreated,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
