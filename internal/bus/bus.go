// Package bus delivers decoded events to a single injected handler,
// synchronously, on the decoder goroutine — spec section 4.H.
package bus

import (
	"time"

	"github.com/jechtern/rf433d/internal/protocol"
)

// Key tags a decoded event's primary value, from spec section 3.
type Key string

const (
	Payload     Key = "PAYLOAD"
	Button      Key = "BUTTON"
	Rolling     Key = "ROLLING"
	Temperature Key = "TEMPERATURE"
	Humidity    Key = "HUMIDITY"
	Battery     Key = "BATTERY"
)

// Event is the fully-valued decoded record handed to the bus, per
// spec section 3's data model. Only the fields relevant to the
// originating protocol are populated; the rest are left at their zero
// value, matching the JSON schema in spec section 6 ("only fields
// relevant to the protocol appear").
type Event struct {
	Protocol protocol.Protocol
	DeviceID uint32
	Channel  int
	Repeat   int

	Key   Key
	Value int

	IKey1   Key
	IValue1 int
	IKey2   Key
	IValue2 int

	FKey1   Key
	FValue1 float64

	MessageText string

	Raw  uint64
	Seen time.Time
}

// Handler receives one decoded event. It must not call back into the
// transmitter on the calling goroutine without yielding first; doing
// so risks delaying the decoder.
type Handler func(Event)

// Bus owns the single subscriber slot spec section 4.H describes.
type Bus struct {
	handler Handler
}

// New builds a Bus delivering to handler. A nil handler is valid and
// silently discards events (useful for dry runs).
func New(handler Handler) *Bus {
	return &Bus{handler: handler}
}

// Publish delivers evt to the subscriber, synchronously.
func (b *Bus) Publish(evt Event) {
	if b.handler == nil {
		return
	}
	b.handler(evt)
}

// Multi fans a single Handler slot out to several handlers, so the
// CLI can wire both JSON-stdout output and the sysfs-like sink
// without changing Bus's single-slot contract — the fan-out lives
// here, in the collaborator layer, per spec section 9's design note.
func Multi(handlers ...Handler) Handler {
	return func(evt Event) {
		for _, h := range handlers {
			if h != nil {
				h(evt)
			}
		}
	}
}
