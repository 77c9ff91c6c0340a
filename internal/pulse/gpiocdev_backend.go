package pulse

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// gpiocdevPin adapts github.com/warthog618/go-gpiocdev, a portable
// Linux GPIO character-device driver, to the pulse.Pin contract. It
// is the fallback backend for boards whose SoC periph.io/x/host/v3
// doesn't recognize: gpiocdev talks to any /dev/gpiochipN without
// needing a board-specific register driver.
//
// gpiocdev delivers edges via a callback rather than a blocking call,
// so WaitForEdge is implemented by buffering callback events onto a
// small channel and selecting on it with a timeout.
type gpiocdevPin struct {
	chip   string
	offset int

	mu    sync.Mutex
	line  *gpiocdev.Line
	edges chan gpiocdev.LineEvent
}

// OpenGpiocdevPin opens offset on chip (e.g. "gpiochip0", 27). Use
// ParsePinName to derive chip/offset from a "GPIOn" style name.
func OpenGpiocdevPin(chip string, offset int) (Pin, error) {
	return &gpiocdevPin{
		chip:   chip,
		offset: offset,
		edges:  make(chan gpiocdev.LineEvent, 16),
	}, nil
}

// ParsePinName extracts a gpiochip0 line offset from names of the
// form "GPIO27"; it is a convenience for configs written against the
// periph.io backend's naming so both backends accept the same Config.
func ParsePinName(name string) (chip string, offset int, err error) {
	trimmed := strings.TrimPrefix(strings.ToUpper(name), "GPIO")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", 0, fmt.Errorf("gpiocdev: cannot parse pin name %q: %w", name, err)
	}
	return "gpiochip0", n, nil
}

func (p *gpiocdevPin) In(pull Pull, edge Edge) error {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch pull {
	case PullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case PullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	}
	switch edge {
	case RisingEdge:
		opts = append(opts, gpiocdev.WithRisingEdge)
	case FallingEdge:
		opts = append(opts, gpiocdev.WithFallingEdge)
	case BothEdges:
		opts = append(opts, gpiocdev.WithBothEdges)
	}
	if edge != NoEdge {
		opts = append(opts, gpiocdev.WithEventHandler(p.onEvent))
	}
	return p.open(opts...)
}

func (p *gpiocdevPin) Out(level Level) error {
	v := 0
	if level == High {
		v = 1
	}
	return p.open(gpiocdev.AsOutput(v))
}

func (p *gpiocdevPin) open(opts ...gpiocdev.LineReqOption) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line != nil {
		p.line.Close()
	}
	line, err := gpiocdev.RequestLine(p.chip, p.offset, opts...)
	if err != nil {
		return fmt.Errorf("gpiocdev: request %s:%d: %w", p.chip, p.offset, err)
	}
	p.line = line
	return nil
}

func (p *gpiocdevPin) onEvent(evt gpiocdev.LineEvent) {
	select {
	case p.edges <- evt:
	default:
		// Consumer fell behind; drop the oldest-pending report rather
		// than block the kernel's notification goroutine.
		select {
		case <-p.edges:
		default:
		}
		p.edges <- evt
	}
}

func (p *gpiocdevPin) Read() Level {
	p.mu.Lock()
	line := p.line
	p.mu.Unlock()
	if line == nil {
		return Low
	}
	v, err := line.Value()
	if err != nil || v == 0 {
		return Low
	}
	return High
}

func (p *gpiocdevPin) WaitForEdge(timeout time.Duration) bool {
	select {
	case <-p.edges:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (p *gpiocdevPin) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	return err
}
