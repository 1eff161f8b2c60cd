package api

import (
	"testing"
	"time"
)

func TestSSEHubBroadcastReachesSessionClients(t *testing.T) {
	hub := NewSSEHub()

	clientChan := make(chan AgentEvent, 10)
	hub.register <- SSEClient{SessionID: "sess-1", Channel: clientChan}

	// The hub loop processes registrations asynchronously.
	deadline := time.After(time.Second)
	for hub.ClientCount("sess-1") == 0 {
		select {
		case <-deadline:
			t.Fatal("client was never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	hub.Broadcast(AgentEvent{SessionID: "sess-1", EventType: "agent_reply"})

	select {
	case event := <-clientChan:
		if event.EventType != "agent_reply" {
			t.Errorf("unexpected event type %q", event.EventType)
		}
		if event.Timestamp.IsZero() {
			t.Error("broadcast should stamp the event")
		}
	case <-time.After(time.Second):
		t.Fatal("event never reached the client")
	}
}

func TestSSEHubIgnoresOtherSessions(t *testing.T) {
	hub := NewSSEHub()

	clientChan := make(chan AgentEvent, 10)
	hub.register <- SSEClient{SessionID: "sess-1", Channel: clientChan}

	deadline := time.After(time.Second)
	for hub.ClientCount("sess-1") == 0 {
		select {
		case <-deadline:
			t.Fatal("client was never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	hub.Broadcast(AgentEvent{SessionID: "sess-2", EventType: "agent_reply"})

	select {
	case event := <-clientChan:
		t.Errorf("client received an event for another session: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}
