package catalog

import "fmt"

// PriceType is the discriminator of a Price variant.
type PriceType string

// Price variants.
const (
	PriceFixed PriceType = "Fixed"
)

// priceTypeField is the discriminator field of an encoded Price.
const priceTypeField = "type"

// Price is what a variation or modification costs. It is a closed union;
// the only implementation today is Fixed. New variants need a PriceType
// constant and a case in decodePriceFields.
type Price interface {
	// PriceType returns the variant discriminator.
	PriceType() PriceType

	priceFields() (fields, error)
}

// Fixed is a single amount in one currency. Amount is not bounded here;
// zero and negative values are legal. Currency is free-form, conventionally
// an ISO 4217 code.
//
// Fixed is a value type: decoding always yields a Fixed, so the encoders
// reject a *Fixed with ErrMalformedField.
type Fixed struct {
	Amount   float64
	Currency string
}

var _ Price = Fixed{}

// PriceType returns PriceFixed.
func (Fixed) PriceType() PriceType { return PriceFixed }

func (p Fixed) priceFields() (fields, error) {
	return newFields(
		entry{"amount", p.Amount},
		entry{"currency", p.Currency},
	)
}

// MarshalJSON encodes p with its discriminator, as EncodePrice does.
func (p Fixed) MarshalJSON() ([]byte, error) {
	return EncodePrice(p)
}

// EncodePrice encodes p as one JSON object holding the discriminator field
// "type" next to the variant's own fields.
func EncodePrice(p Price) ([]byte, error) {
	f, err := encodePriceFields(p)
	if err != nil {
		return nil, err
	}
	return f.marshal()
}

// DecodePrice decodes a Price encoded by EncodePrice.
// Returns ErrUnknownVariant if the discriminator names no known variant,
// ErrMissingField or ErrMalformedField if the variant's fields are absent,
// mistyped or unexpected.
func DecodePrice(data []byte) (Price, error) {
	f, err := parseFields(data)
	if err != nil {
		return nil, err
	}
	return decodePriceFields(f)
}

func encodePriceFields(p Price) (fields, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: price", ErrMissingField)
	}
	if _, ok := p.(*Fixed); ok {
		return nil, fmt.Errorf("%w: price: *Fixed, want a Fixed value", ErrMalformedField)
	}
	f, err := p.priceFields()
	if err != nil {
		return nil, err
	}
	if err := f.put(priceTypeField, p.PriceType()); err != nil {
		return nil, err
	}
	return f, nil
}

// decodePriceFields reads the discriminator first and hands the remaining
// fields to the matching variant decoder only.
func decodePriceFields(f fields) (Price, error) {
	var t string
	if err := f.require(priceTypeField, &t); err != nil {
		return nil, err
	}
	rest := f.without(priceTypeField)

	switch PriceType(t) {
	case PriceFixed:
		p, err := decodeFixed(rest)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: price type %q", ErrUnknownVariant, t)
	}
}

func decodeFixed(f fields) (Fixed, error) {
	var p Fixed
	if err := f.requireAll(
		entry{"amount", &p.Amount},
		entry{"currency", &p.Currency},
	); err != nil {
		return Fixed{}, err
	}
	if err := f.only("amount", "currency"); err != nil {
		return Fixed{}, err
	}
	return p, nil
}

// encodeFlatPrice returns the fields of p renamed with prefix, ready to be
// merged into a containing record.
func encodeFlatPrice(p Price, prefix string) (fields, error) {
	f, err := encodePriceFields(p)
	if err != nil {
		return nil, err
	}
	return f.withPrefix(prefix), nil
}

// decodeFlatPrice splits the prefixed fields out of a flat record and
// decodes them as a Price. It returns the unprefixed remainder for the
// containing record's own decoder.
func decodeFlatPrice(f fields, prefix string) (Price, fields, error) {
	prefixed, rest := f.splitPrefix(prefix)
	if len(prefixed) == 0 {
		return nil, nil, fmt.Errorf("%w: %s%s", ErrMissingField, prefix, priceTypeField)
	}
	p, err := decodePriceFields(prefixed)
	if err != nil {
		return nil, nil, fmt.Errorf("price: %w", err)
	}
	return p, rest, nil
}
