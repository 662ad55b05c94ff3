package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/events"
)

// stubSnapshots returns a canned view set and remembers the last state
// it was asked about.
type stubSnapshots struct {
	lastState domain.FilterState
}

func (s *stubSnapshots) Snapshot(_ context.Context, state domain.FilterState) events.DashboardViews {
	s.lastState = state
	return events.DashboardViews{
		Counties: []string{domain.AllValue},
	}
}

func newTestHub(t *testing.T) (*Hub, *stubSnapshots) {
	t.Helper()
	snapshots := &stubSnapshots{}
	hub := NewHub(snapshots, newDiscardLogger())
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub, snapshots
}

func receiveMessage(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func decodeEnvelope(t *testing.T, raw []byte) events.WebSocketMessage {
	t.Helper()
	var msg events.WebSocketMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestHubRegisterPushesAckAndSnapshot(t *testing.T) {
	hub, _ := newTestHub(t)
	client := NewClientWithConnection(hub, NewMockConnection(), newDiscardLogger())

	hub.Register(client)

	ack := decodeEnvelope(t, receiveMessage(t, client))
	assert.Equal(t, events.MessageTypeConnect, ack.Type)

	snapshot := decodeEnvelope(t, receiveMessage(t, client))
	assert.Equal(t, events.MessageTypeDashboardSnapshot, snapshot.Type)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestHubUnregisterClosesSendQueue(t *testing.T) {
	hub, _ := newTestHub(t)
	client := NewClientWithConnection(hub, NewMockConnection(), newDiscardLogger())

	hub.Register(client)
	receiveMessage(t, client)
	receiveMessage(t, client)

	hub.Unregister(client)

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestBroadcastSystemStatus(t *testing.T) {
	hub, _ := newTestHub(t)
	client := NewClientWithConnection(hub, NewMockConnection(), newDiscardLogger())

	hub.Register(client)
	receiveMessage(t, client)
	receiveMessage(t, client)

	hub.BroadcastSystemStatus("healthy", 4000, 78000, "1.0.0")

	msg := decodeEnvelope(t, receiveMessage(t, client))
	assert.Equal(t, events.MessageTypeSystemStatus, msg.Type)

	data, ok := msg.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
	assert.EqualValues(t, 4000, data["institutions"])
	assert.EqualValues(t, 78000, data["branches"])
}

func TestHubStats(t *testing.T) {
	hub, _ := newTestHub(t)
	client := NewClientWithConnection(hub, NewMockConnection(), newDiscardLogger())

	hub.Register(client)
	receiveMessage(t, client)
	receiveMessage(t, client)

	stats := hub.Stats()
	assert.Equal(t, 1, stats["active_clients"])
	assert.EqualValues(t, 1, stats["total_connections"])
}

func TestSessionsAreIndependent(t *testing.T) {
	hub, snapshots := newTestHub(t)

	first := NewClientWithConnection(hub, NewMockConnection(), newDiscardLogger())
	second := NewClientWithConnection(hub, NewMockConnection(), newDiscardLogger())

	hub.Register(first)
	receiveMessage(t, first)
	receiveMessage(t, first)
	hub.Register(second)
	receiveMessage(t, second)
	receiveMessage(t, second)

	first.handleMessage([]byte(`{"type":"filter:set_state","data":{"value":"Texas"}}`))
	receiveMessage(t, first)

	assert.Equal(t, "Texas", first.Session().State().State)
	assert.Equal(t, "", second.Session().State().State)
	assert.Equal(t, "Texas", snapshots.lastState.State)
}
