package catalog

import (
	"encoding/json"
	"fmt"
)

// ObjectType is the discriminator of a CatalogObject.
type ObjectType string

// Catalog object variants.
const (
	ObjectItem         ObjectType = "Item"
	ObjectVariation    ObjectType = "Variation"
	ObjectModification ObjectType = "Modification"
)

// Envelope field names. Document flattens these into its own level.
const (
	objectTypeField = "type"
	objectDataField = "data"
)

var validObjectTypes = tagSet([]ObjectType{ObjectItem, ObjectVariation, ObjectModification})

// ParseObjectType returns the object type named s.
// Returns ErrUnknownVariant if s is not a variant name.
func ParseObjectType(s string) (ObjectType, error) {
	return parseTag("catalog object type", s, validObjectTypes)
}

// CatalogObject holds exactly one of Item, ItemVariation[ID] or
// ItemModification[ID]. Build one with FromItem, FromVariation or
// FromModification; the zero value holds nothing and cannot be encoded.
type CatalogObject[ID any] struct {
	kind    ObjectType
	payload any
}

// FromItem lifts an Item into a CatalogObject.
func FromItem[ID any](it Item) CatalogObject[ID] {
	return CatalogObject[ID]{kind: ObjectItem, payload: it}
}

// FromVariation lifts an ItemVariation into a CatalogObject.
func FromVariation[ID any](v ItemVariation[ID]) CatalogObject[ID] {
	return CatalogObject[ID]{kind: ObjectVariation, payload: v}
}

// FromModification lifts an ItemModification into a CatalogObject.
func FromModification[ID any](m ItemModification[ID]) CatalogObject[ID] {
	return CatalogObject[ID]{kind: ObjectModification, payload: m}
}

// Type returns the active variant, or "" for the zero value.
func (o CatalogObject[ID]) Type() ObjectType { return o.kind }

// IsZero reports whether o holds no variant.
func (o CatalogObject[ID]) IsZero() bool { return o.payload == nil }

// Item returns the payload if o holds an Item.
func (o CatalogObject[ID]) Item() (Item, bool) {
	it, ok := o.payload.(Item)
	return it, ok
}

// Variation returns the payload if o holds an ItemVariation.
func (o CatalogObject[ID]) Variation() (ItemVariation[ID], bool) {
	v, ok := o.payload.(ItemVariation[ID])
	return v, ok
}

// Modification returns the payload if o holds an ItemModification.
func (o CatalogObject[ID]) Modification() (ItemModification[ID], bool) {
	m, ok := o.payload.(ItemModification[ID])
	return m, ok
}

// Visitor handles every CatalogObject variant. Adding a variant adds a
// method here, so every implementation fails to compile until it handles it.
type Visitor[ID any] interface {
	VisitItem(Item) error
	VisitVariation(ItemVariation[ID]) error
	VisitModification(ItemModification[ID]) error
}

// Visit calls the Visitor method for the active variant.
// Returns ErrEmptyObject for the zero value.
func (o CatalogObject[ID]) Visit(v Visitor[ID]) error {
	switch p := o.payload.(type) {
	case Item:
		return v.VisitItem(p)
	case ItemVariation[ID]:
		return v.VisitVariation(p)
	case ItemModification[ID]:
		return v.VisitModification(p)
	default:
		return ErrEmptyObject
	}
}

func (o CatalogObject[ID]) MarshalJSON() ([]byte, error) {
	f, err := o.fields()
	if err != nil {
		return nil, err
	}
	return f.marshal()
}

func (o *CatalogObject[ID]) UnmarshalJSON(data []byte) error {
	f, err := parseFields(data)
	if err != nil {
		return err
	}
	out, err := decodeObjectFields[ID](f)
	if err != nil {
		return err
	}
	*o = out
	return nil
}

// EncodeObject encodes a draft envelope, one not yet wrapped in a Document.
func EncodeObject[ID any](o CatalogObject[ID]) ([]byte, error) {
	return o.MarshalJSON()
}

// DecodeObject decodes a draft envelope encoded by EncodeObject.
func DecodeObject[ID any](data []byte) (CatalogObject[ID], error) {
	var o CatalogObject[ID]
	if err := o.UnmarshalJSON(data); err != nil {
		return CatalogObject[ID]{}, err
	}
	return o, nil
}

// fields encodes the discriminator and the nested payload. The payload is
// not flattened: variants share field names such as name and enabled.
func (o CatalogObject[ID]) fields() (fields, error) {
	if o.IsZero() {
		return nil, ErrEmptyObject
	}
	return newFields(
		entry{objectTypeField, string(o.kind)},
		entry{objectDataField, o.payload},
	)
}

// decodeObjectFields reads type and data from f and ignores every other
// field, so Document can pass its whole field set.
func decodeObjectFields[ID any](f fields) (CatalogObject[ID], error) {
	var name string
	if err := f.require(objectTypeField, &name); err != nil {
		return CatalogObject[ID]{}, err
	}
	kind, err := ParseObjectType(name)
	if err != nil {
		return CatalogObject[ID]{}, err
	}
	var data json.RawMessage
	if err := f.require(objectDataField, &data); err != nil {
		return CatalogObject[ID]{}, err
	}

	switch kind {
	case ObjectItem:
		var it Item
		if err := json.Unmarshal(data, &it); err != nil {
			return CatalogObject[ID]{}, fieldError(objectDataField, err)
		}
		return FromItem[ID](it), nil
	case ObjectVariation:
		var v ItemVariation[ID]
		if err := json.Unmarshal(data, &v); err != nil {
			return CatalogObject[ID]{}, fieldError(objectDataField, err)
		}
		return FromVariation(v), nil
	case ObjectModification:
		var m ItemModification[ID]
		if err := json.Unmarshal(data, &m); err != nil {
			return CatalogObject[ID]{}, fieldError(objectDataField, err)
		}
		return FromModification(m), nil
	default:
		return CatalogObject[ID]{}, fmt.Errorf("%w: catalog object type %q", ErrUnknownVariant, name)
	}
}
