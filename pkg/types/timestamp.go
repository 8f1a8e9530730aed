package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// TimestampLayout is the ISO-8601 form used in persisted data and exports:
// UTC with millisecond precision, e.g. 2024-01-15T09:30:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a point in time that serializes in TimestampLayout.
// The zero Timestamp stands for a missing value; it encodes as JSON null and
// renders as the empty string.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to millisecond precision and converts it to UTC,
// matching what survives a round trip through storage.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses an ISO-8601 string. Any RFC 3339 offset is accepted
// and normalized to UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, err
	}
	return NewTimestamp(t), nil
}

// String returns the timestamp in TimestampLayout, or "" when zero.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler. Records written by older
// versions may carry null, empty or malformed timestamps; those decode to
// the zero Timestamp instead of failing the whole collection.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return nil
	}
	*ts = parsed
	return nil
}
