package notification_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/domain/notification"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHubDeliversToRegisteredUser(t *testing.T) {
	hub := notification.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	userID := uuid.New()
	conn := &notification.Connection{UserID: userID, Send: make(chan []byte, 8)}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.IsOnline(userID) })

	if err := hub.SendToUser(userID, &notification.Event{
		Type: notification.EventBookingConfirmed,
		Data: map[string]string{"total": "480.00"},
	}); err != nil {
		t.Fatalf("SendToUser() error = %v", err)
	}

	select {
	case raw := <-conn.Send:
		var event struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		if err := json.Unmarshal(raw, &event); err != nil {
			t.Fatalf("unmarshal event: %v (%s)", err, raw)
		}
		if event.Type != "booking:confirmed" {
			t.Errorf("event type = %q, want booking:confirmed", event.Type)
		}
		if event.Data["total"] != "480.00" {
			t.Errorf("event data total = %q, want 480.00", event.Data["total"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubSkipsOtherUsers(t *testing.T) {
	hub := notification.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	alice := uuid.New()
	bob := uuid.New()
	conn := &notification.Connection{UserID: bob, Send: make(chan []byte, 8)}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.IsOnline(bob) })

	if err := hub.SendToUser(alice, &notification.Event{Type: notification.EventBookingCancelled}); err != nil {
		t.Fatalf("SendToUser() error = %v", err)
	}

	select {
	case raw := <-conn.Send:
		t.Fatalf("bob received alice's event: %s", raw)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := notification.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	userID := uuid.New()
	conn := &notification.Connection{UserID: userID, Send: make(chan []byte, 1)}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.IsOnline(userID) })

	// Second send must not block even though nobody drains the channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			_ = hub.SendToUser(userID, &notification.Event{Type: notification.EventBookingConfirmed})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SendToUser blocked on a full buffer")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := notification.NewHub(nil)
	go hub.Run()
	defer hub.Shutdown()

	userID := uuid.New()
	conn := &notification.Connection{UserID: userID, Send: make(chan []byte, 8)}
	hub.Register(conn)
	waitFor(t, func() bool { return hub.IsOnline(userID) })

	hub.Unregister(conn)
	waitFor(t, func() bool { return !hub.IsOnline(userID) })

	select {
	case _, ok := <-conn.Send:
		if ok {
			t.Fatal("expected closed Send channel, got a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Send channel not closed after unregister")
	}
}
