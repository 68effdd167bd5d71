package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeJSON(t *testing.T) {
	ts := NewTime(time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC))

	b, err := json.Marshal(ts)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-08-29T10:15:00Z"`, string(b))

	var decoded Time
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, ts.Equal(decoded))
}

func TestTimeScan(t *testing.T) {
	var ts Time
	assert.NoError(t, ts.Scan(time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, 2026, ts.Year())

	assert.NoError(t, ts.Scan("2026-08-29 10:15:00"))
	assert.Equal(t, 15, ts.Minute())

	assert.Error(t, ts.Scan(42))
}

func TestMapRoundTrip(t *testing.T) {
	m := Map{"caseId": "C-1", "nested": map[string]interface{}{"n": float64(1)}}

	v, err := m.Value()
	assert.NoError(t, err)

	var decoded Map
	assert.NoError(t, decoded.Scan(v))
	assert.Equal(t, m, decoded)
}

func TestMapNil(t *testing.T) {
	var m Map
	v, err := m.Value()
	assert.NoError(t, err)
	assert.Nil(t, v)

	var decoded Map
	assert.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)

	b, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
