package catalog

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimestamp(t *testing.T) {
	ts, err := NewTimestamp(time.Date(2023, 11, 14, 22, 13, 20, 500, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, Timestamp(1700000000), ts)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts.Time())

	_, err = NewTimestamp(time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.ErrorIs(t, err, ErrTimestampRange)

	last := time.Unix(math.MaxUint32, 0)
	ts, err = NewTimestamp(last)
	require.NoError(t, err)
	assert.Equal(t, Timestamp(math.MaxUint32), ts)

	_, err = NewTimestamp(last.Add(time.Second))
	assert.ErrorIs(t, err, ErrTimestampRange)
}

func TestVersionNext(t *testing.T) {
	v, ok := Version(1).Next()
	assert.True(t, ok)
	assert.Equal(t, Version(2), v)

	v, ok = Version(math.MaxUint16).Next()
	assert.False(t, ok)
	assert.Equal(t, Version(math.MaxUint16), v)
}
