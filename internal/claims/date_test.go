package claims

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseDate tests permissive parsing and canonical output.
func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-06-15", "2024-06-15"},
		{"2024-6-5", "2024-06-05"},
		{"1999-12-31", "1999-12-31"},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d.String())
	}
}

// TestParseDate_Invalid tests rejection of malformed input.
func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024-13-01", "15/06/2024"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

// TestDate_Ordering tests Before/After at day granularity.
func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, time.June, 15)
	b := NewDate(2024, time.June, 16)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}

// TestDate_JSONRoundTrip tests JSON encoding of dates.
func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 15)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-15"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

// TestDateOf tests truncation of a timestamp to its UTC date.
func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.June, 15), DateOf(ts))
}
