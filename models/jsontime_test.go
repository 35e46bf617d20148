package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONTimeUnmarshalAcceptedLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-03-10"`:                 time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		`"2024-03-10T14:30:00Z"`:       time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
		`"2024-03-10T14:30:00.123456"`: time.Date(2024, 3, 10, 14, 30, 0, 123456000, time.UTC),
	}
	for in, want := range cases {
		var jt JSONTime
		require.NoError(t, json.Unmarshal([]byte(in), &jt), "input %s", in)
		assert.True(t, jt.Time().Equal(want), "input %s parsed to %v", in, jt.Time())
	}
}

func TestJSONTimeUnmarshalRejectsGarbage(t *testing.T) {
	var jt JSONTime
	assert.Error(t, json.Unmarshal([]byte(`"10/03/2024"`), &jt))
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &jt))
}

func TestJSONTimeMarshalRoundTrip(t *testing.T) {
	orig := JSONTime(time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC))
	out, err := json.Marshal(orig)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-10T14:30:00Z"`, string(out))

	var back JSONTime
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back.Time().Equal(orig.Time()))
}

func TestJSONTimeScan(t *testing.T) {
	var jt JSONTime
	now := time.Now()
	require.NoError(t, jt.Scan(now))
	assert.True(t, jt.Time().Equal(now))

	require.NoError(t, jt.Scan("2024-03-10 14:30:00"))
	assert.Equal(t, 2024, jt.Time().Year())

	require.NoError(t, jt.Scan(nil))
	assert.True(t, jt.Time().IsZero())

	assert.Error(t, jt.Scan(42))
}
