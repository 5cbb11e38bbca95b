package catalog

import (
	"fmt"
	"math"
	"time"
)

// Timestamp is a creation time in whole seconds since the Unix epoch, UTC.
// The wire width is 32 bits unsigned, so the last representable instant is
// 2106-02-07T06:28:15Z.
type Timestamp uint32

// NewTimestamp truncates t to seconds.
// Returns ErrTimestampRange if t is before 1970 or after the 32-bit limit.
func NewTimestamp(t time.Time) (Timestamp, error) {
	s := t.Unix()
	if s < 0 || s > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s", ErrTimestampRange, t.UTC().Format(time.RFC3339))
	}
	return Timestamp(s), nil
}

// Time returns ts as a UTC time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Version counts the mutations a document has seen.
type Version uint16

// Next returns the version after v. It reports false when v is already
// the largest representable version.
func (v Version) Next() (Version, bool) {
	if v == math.MaxUint16 {
		return v, false
	}
	return v + 1, true
}
