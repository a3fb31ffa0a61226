package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 utc", `"2024-03-01T12:30:00Z"`, want},
		{"rfc3339 offset", `"2024-03-01T14:30:00+02:00"`, want},
		{"no zone", `"2024-03-01T12:30:00"`, want},
		{"space separated", `"2024-03-01 12:30:00"`, want},
		{"fractional", `"2024-03-01T12:30:00.250Z"`, want.Add(250 * time.Millisecond)},
		{"epoch millis", "1709296200000", want},
		{"epoch seconds float", "1709296200.5", want.Add(500 * time.Millisecond)},
		{"null", "null", time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.input), &ts))
			assert.True(t, tc.want.Equal(ts.Time), "got %s", ts.Time)
			if !ts.IsZero() {
				assert.Equal(t, time.UTC, ts.Location())
			}
		})
	}
}

func TestTimestampUnmarshalInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`"yesterday"`, `"2024-13-01T00:00:00Z"`, `true`} {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(input), &ts), input)
	}
}

func TestTimestampMarshal(t *testing.T) {
	t.Parallel()

	ts := Timestamp{Time: time.Date(2024, 3, 1, 14, 30, 0, 0, time.FixedZone("x", 2*3600))}
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-01T12:30:00Z"`, string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
