package realtime

import (
	"testing"
	"time"
)

func TestHubPushReachesRegisteredUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{UserID: "user-1", Send: make(chan []byte, 1)}
	hub.Register(client)

	hub.Push("user-1", []byte("hello"))

	select {
	case msg := <-client.Send:
		if string(msg) != "hello" {
			t.Errorf("got %q, want hello", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for pushed message")
	}
}

func TestHubPushScopedToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	target := &Client{UserID: "user-1", Send: make(chan []byte, 1)}
	other := &Client{UserID: "user-2", Send: make(chan []byte, 1)}
	hub.Register(target)
	hub.Register(other)

	hub.Push("user-1", []byte("for user-1"))

	select {
	case <-target.Send:
	case <-time.After(time.Second):
		t.Fatal("target never received message")
	}

	select {
	case msg := <-other.Send:
		t.Errorf("other user received %q, want nothing", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{UserID: "user-1", Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Error("expected closed channel after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}
}

func TestHubMultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	first := &Client{UserID: "user-1", Send: make(chan []byte, 1)}
	second := &Client{UserID: "user-1", Send: make(chan []byte, 1)}
	hub.Register(first)
	hub.Register(second)

	hub.Push("user-1", []byte("both tabs"))

	for i, c := range []*Client{first, second} {
		select {
		case <-c.Send:
		case <-time.After(time.Second):
			t.Fatalf("connection %d never received message", i)
		}
	}
}
