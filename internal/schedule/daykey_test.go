package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayKey(t *testing.T) {
	k, ok := ParseDayKey("W3-Tue")
	require.True(t, ok)
	assert.Equal(t, 3, k.Week)
	assert.Equal(t, Tue, k.Day)
	assert.Equal(t, "W3-Tue", k.String())
}

func TestParseDayKey_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"W-Mon",
		"W0-Mon",
		"W-1-Mon",
		"3-Mon",
		"W3-Sun",
		"W3-monday",
		"W3Mon",
		"Wx-Mon",
	} {
		_, ok := ParseDayKey(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestDayKey_RoundTrip(t *testing.T) {
	for w := 1; w <= 14; w++ {
		for _, d := range Days {
			k := NewDayKey(w, d)
			parsed, ok := ParseDayKey(k.String())
			require.True(t, ok)
			assert.Equal(t, k, parsed)
		}
	}
}

func TestDayKey_JSONMapKey(t *testing.T) {
	m := map[DayKey][]string{
		NewDayKey(1, Mon): {"a"},
		NewDayKey(2, Sat): {},
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var back map[DayKey][]string
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, m, back)
}
