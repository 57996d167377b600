package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBroadcaster_DeliversLatest tests replay of the last snapshot
func TestBroadcaster_DeliversLatest(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(Snapshot{Frame: 1})
	b.Publish(Snapshot{Frame: 2})

	ch, cancel := b.Subscribe()
	defer cancel()
	s := <-ch
	assert.Equal(t, uint64(2), s.Frame)
}

// TestBroadcaster_DropsForSlowSubscriber tests non-blocking publish
func TestBroadcaster_DropsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := uint64(1); i <= 5; i++ {
		b.Publish(Snapshot{Frame: i})
	}
	s := <-ch
	assert.Equal(t, uint64(1), s.Frame)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected buffered snapshot %d", extra.Frame)
	default:
	}
	last, ok := b.Last()
	require.True(t, ok)
	assert.Equal(t, uint64(5), last.Frame)
}

// TestBroadcaster_Cancel tests unsubscribing
func TestBroadcaster_Cancel(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe()
	assert.Equal(t, 1, b.Subscribers())
	cancel()
	cancel()
	assert.Equal(t, 0, b.Subscribers())
	_, open := <-ch
	assert.False(t, open)
	b.Publish(Snapshot{})
}
