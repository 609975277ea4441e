package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	evt := NewResourceEvent(ResourceCreated, "note", id, owner)

	data, err := Encode(evt)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, ResourceCreated, decoded.EventType())
	assert.Equal(t, "note", decoded.Payload()["kind"])
	assert.Equal(t, id.String(), decoded.Payload()["id"])
	assert.Equal(t, owner.String(), decoded.Payload()["user_id"])
	assert.True(t, evt.Timestamp().Equal(decoded.Timestamp()))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{"},
		{name: "no type", data: `{"data":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
