package catalog

import "errors"

// Decode errors. Every error returned by a decoder in this package matches
// one of these with errors.Is; the message carries the field path.
var (
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrMalformedField    = errors.New("malformed field")
	ErrMissingField      = errors.New("missing field")
	ErrMalformedDocument = errors.New("malformed document")
)

// Construction errors.
var (
	ErrEmptyObject    = errors.New("catalog object has no variant")
	ErrTimestampRange = errors.New("timestamp out of range")
)

// catalogErrors lists the sentinels that pass through field wrapping unchanged.
var catalogErrors = []error{
	ErrUnknownVariant,
	ErrMalformedField,
	ErrMissingField,
	ErrMalformedDocument,
	ErrEmptyObject,
}

func isCatalogError(err error) bool {
	for _, target := range catalogErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
