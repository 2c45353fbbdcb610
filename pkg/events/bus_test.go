package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerChanged struct {
	CustomerID int64
}

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewBus[ledgerChanged](4)

	a, unsubA := bus.Subscribe()
	defer unsubA()
	b, unsubB := bus.Subscribe()
	defer unsubB()

	n := bus.Publish(ledgerChanged{CustomerID: 7})
	assert.Equal(t, 2, n)

	assert.Equal(t, int64(7), (<-a).CustomerID)
	assert.Equal(t, int64(7), (<-b).CustomerID)
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus[ledgerChanged](1)

	ch, unsub := bus.Subscribe()
	require.Equal(t, 1, bus.Len())

	unsub()
	unsub()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.Len())
	assert.Equal(t, 0, bus.Publish(ledgerChanged{CustomerID: 1}))
}

func TestBus_SlowSubscriberDropsEvents(t *testing.T) {
	bus := NewBus[ledgerChanged](1)

	ch, unsub := bus.Subscribe()
	defer unsub()

	assert.Equal(t, 1, bus.Publish(ledgerChanged{CustomerID: 1}))
	assert.Equal(t, 0, bus.Publish(ledgerChanged{CustomerID: 2}))

	assert.Equal(t, int64(1), (<-ch).CustomerID)
}
