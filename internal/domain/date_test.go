package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var payload struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	err := json.Unmarshal([]byte(`{"start":"2024-06-01","end":"2024-06-05T15:04:05Z"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.June, 1), payload.Start)
	assert.Equal(t, NewDate(2024, time.June, 5), payload.End)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-06-01","end":"2024-06-05"}`, string(out))
}

func TestDateRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"06/01/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240601`), &d))
}

func TestDateNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2023, time.March, 9, 22, 0, 0, 0, time.FixedZone("x", 3600))))
	assert.Equal(t, "2023-03-09", d.String())

	require.NoError(t, d.Scan("2022-01-31"))
	assert.Equal(t, "2022-01-31", d.String())

	assert.Error(t, d.Scan(42))
}
