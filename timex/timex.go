// Package timex holds small time helpers: a JSON-friendly Duration for the
// config layer and the RFC3339 text format used for every persisted
// timestamp.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON config can specify intervals either
// as strings like "3s" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		d.Duration = time.Duration(x)
		return nil
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", x, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration.String())
}

// layout is RFC3339 with fixed-width nanoseconds. time.RFC3339Nano trims
// trailing fractional zeros, which breaks text ordering when whole-second
// and sub-second values mix ('Z' sorts after '.').
const layout = "2006-01-02T15:04:05.000000000Z07:00"

// Format renders a timestamp in the canonical persisted form: RFC3339 with
// fixed-width nanoseconds, normalized to UTC. Lexicographic order of
// formatted values matches chronological order, which every text-ordered
// read and the incremental-sync checkpoint comparison rely on.
func Format(t time.Time) string {
	return t.UTC().Format(layout)
}

// Parse reads a timestamp persisted by Format. Server-assigned timestamps in
// remote payloads use the same shape.
func Parse(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
