package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPrefix(t *testing.T) {
	f := fields{
		"name":           json.RawMessage(`"n"`),
		"price_type":     json.RawMessage(`"Fixed"`),
		"price_amount":   json.RawMessage(`1`),
		"priceless":      json.RawMessage(`true`),
		"price_currency": json.RawMessage(`"USD"`),
	}

	prefixed, rest := f.splitPrefix("price_")
	assert.Equal(t, fields{
		"type":     json.RawMessage(`"Fixed"`),
		"amount":   json.RawMessage(`1`),
		"currency": json.RawMessage(`"USD"`),
	}, prefixed)
	assert.Equal(t, fields{
		"name":      json.RawMessage(`"n"`),
		"priceless": json.RawMessage(`true`),
	}, rest)

	assert.Equal(t, f.without("name", "priceless"), prefixed.withPrefix("price_"))
}

func TestMergeRejectsCollision(t *testing.T) {
	f := fields{"type": json.RawMessage(`"Item"`)}
	err := f.merge(fields{"type": json.RawMessage(`"Fixed"`)})
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestFieldsMarshalIsDeterministic(t *testing.T) {
	f, err := newFields(entry{"b", 2}, entry{"a", 1}, entry{"c", 3})
	require.NoError(t, err)

	first, err := f.marshal()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := f.marshal()
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(first))
}

func TestRequireStrings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{name: "empty array", input: `{"tags":[]}`, want: []string{}},
		{name: "keeps order and duplicates", input: `{"tags":["b","a","b"]}`, want: []string{"b", "a", "b"}},
		{name: "absent", input: `{}`, wantErr: ErrMissingField},
		{name: "null array", input: `{"tags":null}`, wantErr: ErrMalformedField},
		{name: "null element", input: `{"tags":["a",null]}`, wantErr: ErrMalformedField},
		{name: "number element", input: `{"tags":[1]}`, wantErr: ErrMalformedField},
		{name: "not an array", input: `{"tags":"a"}`, wantErr: ErrMalformedField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parseFields([]byte(tt.input))
			require.NoError(t, err)
			got, err := f.requireStrings("tags")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
