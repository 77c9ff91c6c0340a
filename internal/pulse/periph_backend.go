package pulse

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// periphPin adapts a periph.io/x/conn/v3/gpio.PinIO, looked up by
// name through gpioreg, to the pulse.Pin contract. This is the
// primary backend, grounded on the same periph.io/x/host/v3 +
// gpioreg.ByName pattern EdgxCloud-EdgeFlow's RF433 GPIO node uses to
// drive its transmit and receive pins.
type periphPin struct {
	pin gpio.PinIO
}

// InitPeriphHost registers the platform's periph.io host drivers
// (bcm283x on a Raspberry Pi, sysfs fallback elsewhere). It must be
// called once before OpenPeriphPin.
func InitPeriphHost() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
}

// OpenPeriphPin resolves name (e.g. "GPIO27") to a periph.io pin.
func OpenPeriphPin(name string) (Pin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("periph: no such pin %q", name)
	}
	return &periphPin{pin: p}, nil
}

func (p *periphPin) In(pull Pull, edge Edge) error {
	return p.pin.In(toPeriphPull(pull), toPeriphEdge(edge))
}

func (p *periphPin) Out(level Level) error {
	return p.pin.Out(toPeriphLevel(level))
}

func (p *periphPin) Read() Level {
	return fromPeriphLevel(p.pin.Read())
}

func (p *periphPin) WaitForEdge(timeout time.Duration) bool {
	return p.pin.WaitForEdge(timeout)
}

func (p *periphPin) Halt() error {
	return p.pin.Halt()
}

func toPeriphPull(p Pull) gpio.Pull {
	switch p {
	case PullUp:
		return gpio.PullUp
	case PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func toPeriphEdge(e Edge) gpio.Edge {
	switch e {
	case RisingEdge:
		return gpio.RisingEdge
	case FallingEdge:
		return gpio.FallingEdge
	case BothEdges:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}

func toPeriphLevel(l Level) gpio.Level {
	return gpio.Level(l)
}

func fromPeriphLevel(l gpio.Level) Level {
	return Level(l)
}
