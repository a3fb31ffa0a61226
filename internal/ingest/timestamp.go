package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Accepted layouts for string timestamps. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a point in time that accepts several JSON encodings:
//   - a number with a fraction or exponent is epoch seconds
//   - an integer is epoch milliseconds
//   - a string is an ISO-8601 datetime, UTC when no zone is given
//
// It always encodes as an RFC 3339 string in UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseTimestampString(s)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}

	num := json.Number(data)
	if bytes.ContainsAny(data, ".eE") {
		secs, err := num.Float64()
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		whole, frac := math.Modf(secs)
		t.Time = time.Unix(int64(whole), int64(math.Round(frac*1e6))*int64(time.Microsecond)).UTC()
		return nil
	}

	millis, err := num.Int64()
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	t.Time = time.UnixMilli(millis).UTC()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func parseTimestampString(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
