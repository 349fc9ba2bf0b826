package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/models"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	failing  bool
	closed   bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return assert.AnError
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHubDeliversOnlyToOwner(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	ownerConn := &fakeConn{}
	otherConn := &fakeConn{}
	hub.Register <- &Client{userID: 1, conn: ownerConn}
	hub.Register <- &Client{userID: 2, conn: otherConn}

	hub.Publish(1, Event{Action: "created", Task: models.Task{ID: 10, UserID: 1, Title: "buy milk"}})

	require.Eventually(t, func() bool {
		return ownerConn.messageCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, otherConn.messageCount())
}

func TestHubUnregisterClosesConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	fc := &fakeConn{}
	client := &Client{userID: 1, conn: fc}
	hub.Register <- client
	hub.Unregister <- client

	require.Eventually(t, fc.isClosed, time.Second, 10*time.Millisecond)
}

func TestHubDropsFailingConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	fc := &fakeConn{failing: true}
	hub.Register <- &Client{userID: 3, conn: fc}

	hub.Publish(3, Event{Action: "deleted", Task: models.Task{ID: 5, UserID: 3}})

	require.Eventually(t, fc.isClosed, time.Second, 10*time.Millisecond)
}
