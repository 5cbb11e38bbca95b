package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// fields is one JSON object split into its members. Records are encoded
// into and decoded from fields so that a flattened sub-record can be merged
// in, or split out by name prefix, before either side is parsed.
type fields map[string]json.RawMessage

// entry pairs a wire field name with a value to encode or a pointer to
// decode into.
type entry struct {
	name  string
	value any
}

// newFields encodes each entry into a fresh field set.
func newFields(entries ...entry) (fields, error) {
	f := make(fields, len(entries))
	for _, e := range entries {
		if err := f.put(e.name, e.value); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// parseFields splits a JSON object into its members. Anything other than an
// object, including null, is ErrMalformedField.
func parseFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: expected object: %v", ErrMalformedField, err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: expected object, got null", ErrMalformedField)
	}
	return f, nil
}

func (f fields) put(name string, v any) error {
	if _, dup := f[name]; dup {
		return fmt.Errorf("%w: duplicate field %q", ErrMalformedField, name)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fieldError(name, err)
	}
	f[name] = raw
	return nil
}

// require decodes a field that must be present and non-null.
func (f fields) require(name string, dst any) error {
	raw, ok := f[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if isNull(raw) {
		return fmt.Errorf("%w: %s: null", ErrMalformedField, name)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fieldError(name, err)
	}
	return nil
}

// requireStrings decodes a required array of strings. A null element is
// ErrMalformedField naming its index.
func (f fields) requireStrings(name string) ([]string, error) {
	var elems []json.RawMessage
	if err := f.require(name, &elems); err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, raw := range elems {
		elem := fmt.Sprintf("%s[%d]", name, i)
		if isNull(raw) {
			return nil, fmt.Errorf("%w: %s: null", ErrMalformedField, elem)
		}
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			return nil, fieldError(elem, err)
		}
	}
	return out, nil
}

// requireAll decodes every entry with require, stopping at the first error.
func (f fields) requireAll(entries ...entry) error {
	for _, e := range entries {
		if err := f.require(e.name, e.value); err != nil {
			return err
		}
	}
	return nil
}

// optional decodes a field that may be absent or null. It reports whether a
// value was present.
func (f fields) optional(name string, dst any) (bool, error) {
	raw, ok := f[name]
	if !ok || isNull(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fieldError(name, err)
	}
	return true, nil
}

// only fails with ErrMalformedField if f holds a field outside names.
func (f fields) only(names ...string) error {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	for name := range f {
		if !allowed[name] {
			return fmt.Errorf("%w: unexpected field %q", ErrMalformedField, name)
		}
	}
	return nil
}

// without returns a copy of f minus the named fields.
func (f fields) without(names ...string) fields {
	out := make(fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// withPrefix returns a copy of f with prefix prepended to every name.
func (f fields) withPrefix(prefix string) fields {
	out := make(fields, len(f))
	for k, v := range f {
		out[prefix+k] = v
	}
	return out
}

// splitPrefix partitions f into the fields whose names start with prefix,
// returned with the prefix stripped, and everything else.
func (f fields) splitPrefix(prefix string) (prefixed, rest fields) {
	prefixed = make(fields)
	rest = make(fields, len(f))
	for k, v := range f {
		if name, ok := strings.CutPrefix(k, prefix); ok {
			prefixed[name] = v
			continue
		}
		rest[k] = v
	}
	return prefixed, rest
}

// merge copies src into f. Name collisions are ErrMalformedField.
func (f fields) merge(src fields) error {
	for k, v := range src {
		if _, dup := f[k]; dup {
			return fmt.Errorf("%w: duplicate field %q", ErrMalformedField, k)
		}
		f[k] = v
	}
	return nil
}

// marshal encodes f as one JSON object. Keys are emitted in sorted order so
// the output is deterministic.
func (f fields) marshal() ([]byte, error) {
	return json.Marshal(map[string]json.RawMessage(f))
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// fieldError prefixes err with the field name. Errors already classified by
// this package keep their sentinel; anything else from encoding/json is
// reported as ErrMalformedField.
func fieldError(name string, err error) error {
	if isCatalogError(err) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedField, name, err)
}
