package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampString(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-01T00:00:00.000Z", ts.String())

	local := time.Date(2024, 1, 1, 3, 0, 0, 123456789, time.FixedZone("UTC+3", 3*3600))
	assert.Equal(t, "2024-01-01T00:00:00.123Z", NewTimestamp(local).String())

	assert.Equal(t, "", Timestamp{}.String())
}

func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC))

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-15T09:30:00.000Z"`, string(data))

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, ts.Equal(back.Time))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestTimestampUnmarshalTolerant(t *testing.T) {
	inputs := []string{`null`, `""`, `"yesterday"`, `42`, `{}`}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			ts := NewTimestamp(time.Now())
			require.NoError(t, json.Unmarshal([]byte(in), &ts))
			assert.True(t, ts.IsZero())
		})
	}
}

func TestLeadDecodesLegacyRecord(t *testing.T) {
	raw := `{"id":"x1","name":"Ana","stage":"archived","extra":true}`

	var l Lead
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	assert.Equal(t, "x1", l.ID)
	assert.Equal(t, Stage("archived"), l.Stage, "unknown stages survive decoding")
	assert.Empty(t, l.Phone)
	assert.True(t, l.UpdatedAt.IsZero())
}
