package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"3s"`), &d))
	assert.Equal(t, 3*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1500000000`), &d))
	assert.Equal(t, 1500*time.Millisecond, d.Duration)

	require.Error(t, json.Unmarshal([]byte(`"nonsense"`), &d))
	require.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestFormatParseRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.FixedZone("tbilisi", 4*3600))
	got, err := Parse(Format(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}

func TestFormatOrderingIsLexicographic(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.Add(time.Millisecond)
	assert.Less(t, Format(a), Format(b))
}

func TestFormatOrderingMixedPrecision(t *testing.T) {
	whole := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	sub := whole.Add(500 * time.Millisecond)
	next := whole.Add(time.Second)

	assert.Less(t, Format(whole), Format(sub))
	assert.Less(t, Format(sub), Format(next))

	got, err := Parse(Format(whole))
	require.NoError(t, err)
	assert.True(t, whole.Equal(got))
}
