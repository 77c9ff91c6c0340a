// Package pulse wraps a single GPIO input/output pin pair behind a
// small interface and turns its edges into timed pulse samples,
// mirroring the sampler described in rfsniffer's realtime and stream
// capture paths.
package pulse

import "time"

// Level is a pin's logic level.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Pull selects a pin's internal resistor configuration on input.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selects which transitions WaitForEdge reports on.
type Edge uint8

const (
	NoEdge Edge = iota
	RisingEdge
	FallingEdge
	BothEdges
)

// Pin is the narrow contract the sampler and transmitter need from a
// GPIO line: configure direction, read/write level, and block for an
// edge. It is deliberately smaller than periph.io's gpio.PinIO so that
// both the periph.io/x/host/v3 backend and the go-gpiocdev backend can
// satisfy it without adapting unrelated methods.
type Pin interface {
	// In configures the pin as an input with the given pull and
	// arms edge detection for WaitForEdge.
	In(pull Pull, edge Edge) error
	// Out configures the pin as an output and drives level.
	Out(level Level) error
	// Read returns the pin's current level. Valid after In or Out.
	Read() Level
	// WaitForEdge blocks until an armed edge occurs or timeout
	// elapses, returning whether an edge was observed.
	WaitForEdge(timeout time.Duration) bool
	// Halt releases any OS resources held by the pin.
	Halt() error
}
