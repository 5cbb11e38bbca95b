package catalog

import "fmt"

// Document is the persisted and transmitted form of a catalog entry. ID is
// the document's own identity, distinct from the ItemID references inside
// variation and modification payloads. Account names the owner. Version is
// carried as given; callers that store documents decide how it advances.
// The envelope's type and data fields are flattened into the document, so
// an encoded Document has exactly the keys id, account, version,
// created_at, type and data.
type Document[ID, Account any] struct {
	ID        ID
	Account   Account
	Version   Version
	CreatedAt Timestamp
	Object    CatalogObject[ID]
}

// NewDocument wraps object with identity, ownership, version and creation
// time. Returns ErrEmptyObject if object holds no variant.
func NewDocument[ID, Account any](id ID, account Account, version Version, createdAt Timestamp, object CatalogObject[ID]) (Document[ID, Account], error) {
	if object.IsZero() {
		return Document[ID, Account]{}, ErrEmptyObject
	}
	return Document[ID, Account]{
		ID:        id,
		Account:   account,
		Version:   version,
		CreatedAt: createdAt,
		Object:    object,
	}, nil
}

func (d Document[ID, Account]) MarshalJSON() ([]byte, error) {
	f, err := newFields(
		entry{"id", d.ID},
		entry{"account", d.Account},
		entry{"version", d.Version},
		entry{"created_at", d.CreatedAt},
	)
	if err != nil {
		return nil, err
	}
	of, err := d.Object.fields()
	if err != nil {
		return nil, err
	}
	if err := f.merge(of); err != nil {
		return nil, err
	}
	return f.marshal()
}

// UnmarshalJSON decodes a Document. Every failure matches
// ErrMalformedDocument and also the inner cause, for example
// ErrUnknownVariant for an unrecognised type.
func (d *Document[ID, Account]) UnmarshalJSON(data []byte) error {
	out, err := decodeDocument[ID, Account](data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	*d = out
	return nil
}

// DecodeDocument decodes one encoded Document.
func DecodeDocument[ID, Account any](data []byte) (Document[ID, Account], error) {
	var d Document[ID, Account]
	if err := d.UnmarshalJSON(data); err != nil {
		return Document[ID, Account]{}, err
	}
	return d, nil
}

func decodeDocument[ID, Account any](data []byte) (Document[ID, Account], error) {
	f, err := parseFields(data)
	if err != nil {
		return Document[ID, Account]{}, err
	}
	var d Document[ID, Account]
	if err := f.requireAll(
		entry{"id", &d.ID},
		entry{"account", &d.Account},
		entry{"version", &d.Version},
		entry{"created_at", &d.CreatedAt},
	); err != nil {
		return Document[ID, Account]{}, err
	}
	d.Object, err = decodeObjectFields[ID](f)
	if err != nil {
		return Document[ID, Account]{}, err
	}
	return d, nil
}
