package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func connect(t *testing.T, hub *Hub, sessionID string, want int) *Client {
	client := NewClient(hub, nil, sessionID)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == want }, time.Second, 5*time.Millisecond)
	return client
}

func receive(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHub_NotifyBroadcastsToAllClients(t *testing.T) {
	hub := startHub(t)
	a := connect(t, hub, "a", 1)
	b := connect(t, hub, "b", 2)

	hub.Notify("application.created", map[string]interface{}{"application_id": "app-1"})

	for _, client := range []*Client{a, b} {
		event := receive(t, client)
		assert.Equal(t, "application.created", event.Type)
		assert.Equal(t, "app-1", event.Data["application_id"])
		assert.False(t, event.Timestamp.IsZero())
	}
}

func TestHub_SubscriptionFiltersEvents(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub, "a", 1)

	hub.HandleClientMessage(client, []byte(`{"type":"subscribe","events":["renewals.due"]}`))
	assert.True(t, client.Wants("renewals.due"))
	assert.False(t, client.Wants("application.created"))

	hub.Notify("application.created", nil)
	hub.Notify("renewals.due", map[string]interface{}{"count": 2})

	event := receive(t, client)
	assert.Equal(t, "renewals.due", event.Type)
}

func TestHub_IgnoresMalformedAndExcessMessages(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "a")

	hub.HandleClientMessage(client, []byte("not json"))
	assert.True(t, client.Wants("anything"))

	for i := 0; i < maxMessagesPerSecond; i++ {
		hub.HandleClientMessage(client, []byte(`{"type":"ping"}`))
	}
	hub.HandleClientMessage(client, []byte(`{"type":"subscribe","events":["renewals.due"]}`))
	assert.True(t, client.Wants("application.created"))
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub, "a", 1)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.Send
	assert.False(t, ok)
}
