package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnResolvedPayload(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	e := TurnResolved{
		TurnID:     uuid.MustParse("6f1c1d1e-0000-4000-8000-000000000001"),
		UserID:     "u1",
		Message:    "blue screen",
		Reply:      "Since you're using windows, here is some advice:\n...",
		Path:       "knowledge-base",
		State:      "READY",
		OccurredAt: at,
	}

	var evt Event = e
	assert.Equal(t, TypeTurnResolved, evt.EventType())
	assert.Equal(t, at, evt.Timestamp())

	data, err := json.Marshal(evt.Payload())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "6f1c1d1e-0000-4000-8000-000000000001", decoded["turn_id"])
	assert.Equal(t, "knowledge-base", decoded["path"])
	assert.Equal(t, "2024-05-01T10:00:00Z", decoded["occurred_at"])
}
