package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-10"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDateUnmarshalRejectsBadFormat(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"10/03/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"2026-13-40"`), &d))
}

func TestDateAddDays(t *testing.T) {
	d, err := ParseDate("2026-03-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-04", d.AddDays(15).String())

	// month and year boundaries
	eoy, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", eoy.AddDays(15).String())
}

func TestNewDateTruncatesTime(t *testing.T) {
	ts := time.Date(2026, 3, 10, 23, 59, 58, 0, time.UTC)
	assert.Equal(t, "2026-03-10", NewDate(ts).String())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-03-10", d.String())

	var fromBytes Date
	require.NoError(t, fromBytes.Scan([]byte("2026-03-11")))
	assert.Equal(t, "2026-03-11", fromBytes.String())

	var fromNil Date
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())
}
