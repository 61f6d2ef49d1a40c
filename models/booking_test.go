package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingJSONOmitsCancellationToken(t *testing.T) {
	b := Booking{ClientName: "Ana", Date: "2026-10-19", Status: StatusConfirmed, CancellationToken: "secret-token-123"}

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token-123")
	assert.NotContains(t, string(raw), "cancellationToken")

	raw, err = json.Marshal(NewBookingCreatedResponse(b))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "secret-token-123", body["cancellationToken"])
	assert.Equal(t, "Ana", body["clientName"])
	assert.Equal(t, "2026-10-19", body["date"])
}
