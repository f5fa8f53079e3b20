package realtime

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awave-app/backend/internal/models"
)

func newTestClient(r *Registry, userID uint) *Client {
	return &Client{
		userID:   userID,
		registry: r,
		send:     make(chan []byte, 8),
	}
}

func receivedEvent(t *testing.T, c *Client) *Event {
	t.Helper()
	select {
	case msg := <-c.send:
		var evt Event
		require.NoError(t, json.Unmarshal(msg, &evt))
		return &evt
	default:
		return nil
	}
}

func TestBroadcastFansOutToAllConnections(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = newTestClient(reg, 2)
		reg.add(2, clients[i])
	}
	assert.Equal(t, 3, reg.Connections(2))

	reg.Broadcast(2, &models.Notification{UserID: 2, Type: models.NotificationComment, ReferenceID: 10})

	for _, c := range clients {
		evt := receivedEvent(t, c)
		require.NotNil(t, evt)
		assert.Equal(t, EventNewNotification, evt.Type)
	}
}

func TestBroadcastAfterDisconnect(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	a := newTestClient(reg, 2)
	b := newTestClient(reg, 2)
	reg.add(2, a)
	reg.add(2, b)

	reg.remove(2, a)
	assert.Equal(t, 1, reg.Connections(2))

	reg.Broadcast(2, &models.Notification{UserID: 2, Type: models.NotificationComment, ReferenceID: 10})

	assert.NotNil(t, receivedEvent(t, b))
}

func TestBroadcastNoConnectionsIsNoOp(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	// Must not panic or block.
	reg.Broadcast(99, &models.Notification{UserID: 99, Type: models.NotificationComment, ReferenceID: 10})
	assert.Equal(t, 0, reg.Connections(99))
}

func TestBroadcastTargetsOnlyRecipient(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	recipient := newTestClient(reg, 2)
	bystander := newTestClient(reg, 3)
	reg.add(2, recipient)
	reg.add(3, bystander)

	reg.Broadcast(2, &models.Notification{UserID: 2, Type: models.NotificationReaction, ReferenceID: 10})

	assert.NotNil(t, receivedEvent(t, recipient))
	assert.Nil(t, receivedEvent(t, bystander))
}

func TestRemoveLastConnectionDropsUserEntry(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	c := newTestClient(reg, 2)
	reg.add(2, c)
	reg.remove(2, c)

	assert.Equal(t, 0, reg.Connections(2))
	reg.mu.RLock()
	_, ok := reg.conns[2]
	reg.mu.RUnlock()
	assert.False(t, ok)

	// Removing twice is harmless.
	reg.remove(2, c)
}

func TestSlowClientDoesNotBlockOthers(t *testing.T) {
	reg := NewRegistry(zerolog.Nop())

	slow := &Client{userID: 2, registry: reg, send: make(chan []byte)} // unbuffered, never drained
	fast := newTestClient(reg, 2)
	reg.add(2, slow)
	reg.add(2, fast)

	reg.Broadcast(2, &models.Notification{UserID: 2, Type: models.NotificationComment, ReferenceID: 10})

	assert.NotNil(t, receivedEvent(t, fast))
}
