package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/catalog/pkg/catalog"
	"github.com/mesh-intelligence/catalog/pkg/store"
)

// preservedLine is a documents.jsonl line this build cannot decode, for
// example one carrying a price variant added later. It is written back
// verbatim on every rewrite so the record is never lost.
type preservedLine struct {
	number int
	id     string // empty when the line has no readable string id
	data   []byte
}

// loadResult summarizes one load of documents.jsonl.
type loadResult struct {
	loaded    int
	preserved []preservedLine
}

// loadDocumentsJSONL decodes every line of documents.jsonl and inserts it
// into SQLite inside one transaction: all lines load or the database stays
// empty. When an ID repeats, the last line wins, whether or not it decodes.
// Lines that do not decode are logged and returned for preservation.
func loadDocumentsJSONL(db *sql.DB, path string, log *zap.Logger) (loadResult, error) {
	lines, err := readJSONL(path)
	if err != nil {
		return loadResult{}, err
	}
	if len(lines) == 0 {
		return loadResult{}, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return loadResult{}, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		preserved []preservedLine
		loadedIDs = map[string]bool{}
	)
	for _, line := range lines {
		doc, decodeErr := catalog.DecodeDocument[string, string](line.data)
		if decodeErr == nil && doc.ID == "" {
			decodeErr = store.ErrInvalidID
		}
		if decodeErr != nil {
			id := lineID(line.data)
			log.Warn("preserving undecodable document",
				zap.String("file", path),
				zap.Int("line", line.number),
				zap.String("id", id),
				zap.Error(decodeErr),
			)
			if id != "" {
				preserved = dropPreserved(preserved, id)
				if loadedIDs[id] {
					if _, err := tx.Exec("DELETE FROM documents WHERE id = ?", id); err != nil {
						return loadResult{}, fmt.Errorf("line %d: %w", line.number, err)
					}
					delete(loadedIDs, id)
				}
			}
			preserved = append(preserved, preservedLine{number: line.number, id: id, data: line.data})
			continue
		}

		preserved = dropPreserved(preserved, doc.ID)
		if err := upsertDocument(tx, doc); err != nil {
			return loadResult{}, fmt.Errorf("line %d: %w", line.number, err)
		}
		loadedIDs[doc.ID] = true
	}

	if err := tx.Commit(); err != nil {
		return loadResult{}, fmt.Errorf("committing load transaction: %w", err)
	}
	return loadResult{loaded: len(loadedIDs), preserved: preserved}, nil
}

// dropPreserved removes the preserved lines superseded by a later line for id.
func dropPreserved(lines []preservedLine, id string) []preservedLine {
	out := lines[:0]
	for _, l := range lines {
		if l.id != id {
			out = append(out, l)
		}
	}
	return out
}

// lineID returns the string id of an encoded document that failed to
// decode, or "" if the line has none.
func lineID(data []byte) string {
	var probe struct {
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.ID == nil {
		return ""
	}
	return *probe.ID
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// upsertDocument encodes doc and writes it with its extracted columns.
func upsertDocument(db execer, doc store.Document) error {
	body, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", doc.ID, err)
	}
	_, err = db.Exec(`
		INSERT INTO documents (id, account, version, created_at, type, item_id, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account = excluded.account,
			version = excluded.version,
			created_at = excluded.created_at,
			type = excluded.type,
			item_id = excluded.item_id,
			body = excluded.body`,
		doc.ID, doc.Account, int64(doc.Version), int64(doc.CreatedAt),
		string(doc.Object.Type()), itemRef(doc.Object), string(body))
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}
