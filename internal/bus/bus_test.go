package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiFansOutToAllHandlers(t *testing.T) {
	var a, b int
	h := Multi(
		func(Event) { a++ },
		func(Event) { b++ },
		nil, // nil handlers are skipped
	)
	h(Event{})
	h(Event{})
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}

func TestPublishNilHandlerIsNoOp(t *testing.T) {
	bus := New(nil)
	assert.NotPanics(t, func() { bus.Publish(Event{}) })
}

func TestPublishDeliversSynchronously(t *testing.T) {
	var got Event
	bus := New(func(e Event) { got = e })
	bus.Publish(Event{Raw: 0x1234})
	assert.Equal(t, uint64(0x1234), got.Raw)
}
