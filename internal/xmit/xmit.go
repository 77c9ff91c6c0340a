// Package xmit bit-bangs FLAMINGO-28/24/32 transmit waveforms onto a
// GPIO output pin, grounded on flamingosend.c and restated in the
// pulse.Out/clock.Delay idiom EdgxCloud-EdgeFlow's transmitBit and
// transmitSync helpers use.
package xmit

import (
	"fmt"
	"time"

	"github.com/jechtern/rf433d/internal/clock"
	"github.com/jechtern/rf433d/internal/pulse"
)

// t1 is the FLAMINGO unit pulse width.
const t1 = 330 * time.Microsecond

// segment is one HIGH-then-LOW pulse pair of a transmitted waveform.
type segment struct {
	high time.Duration
	low  time.Duration
}

// Waveform is an ordered list of HIGH/LOW segments bit-banged onto
// the pin back to back.
type Waveform []segment

// send drives w onto pin: each segment is HIGH for .high then LOW for
// .low, timed with clock.Delay.
func send(pin pulse.Pin, w Waveform) error {
	for _, seg := range w {
		if seg.high > 0 {
			if err := pin.Out(pulse.High); err != nil {
				return fmt.Errorf("xmit: drive high: %w", err)
			}
			clock.Delay(seg.high)
		}
		if seg.low > 0 {
			if err := pin.Out(pulse.Low); err != nil {
				return fmt.Errorf("xmit: drive low: %w", err)
			}
			clock.Delay(seg.low)
		}
	}
	return nil
}

// protocolTiming is one row of spec section 4.G's transmit table.
type protocolTiming struct {
	sync       Waveform
	bit0       Waveform
	bit1       Waveform
	repeats    int
	quietPause time.Duration
}

var f28Timing = protocolTiming{
	sync:       Waveform{{high: t1, low: 15 * t1}},
	bit0:       Waveform{{high: t1, low: 3 * t1}},
	bit1:       Waveform{{high: 3 * t1, low: t1}},
	repeats:    4,
	quietPause: 5555 * time.Microsecond,
}

var f24Timing = protocolTiming{
	sync:       Waveform{{high: t1, low: 31 * t1}},
	bit0:       Waveform{{high: t1, low: 3 * t1}},
	bit1:       Waveform{{high: 3 * t1, low: t1}},
	repeats:    5,
	quietPause: 9999 * time.Microsecond,
}

// f32 clock/bit pulse widths. Each bit is two clock pulses (HIGH
// 200µs). The first is followed by LOW 730µs (200+530) for both bit
// values; the second is followed by LOW 200µs for a 0 and LOW 530µs
// for a 1, so the bit value is carried by that second LOW. A final
// clock pulse closes the frame as its terminator (spec: "a frame
// terminator (extra clock pulse) closes each F32 repetition").
const (
	f32Clock  = 200 * time.Microsecond
	f32ShortL = 200 * time.Microsecond
	f32LongL  = 530 * time.Microsecond
)

var f32Timing = protocolTiming{
	sync: Waveform{
		{high: f32Clock, low: 2*530*time.Microsecond + t1},
	},
	bit0: Waveform{
		{high: f32Clock, low: f32ShortL + f32LongL},
		{high: f32Clock, low: f32ShortL},
	},
	bit1: Waveform{
		{high: f32Clock, low: f32LongL + f32ShortL},
		{high: f32Clock, low: f32LongL},
	},
	repeats:    3,
	quietPause: 9999 * time.Microsecond,
}

// f32Terminator is the extra clock pulse spec section 4.G says closes
// each F32 repetition.
var f32Terminator = Waveform{{high: f32Clock, low: 0}}

// frameWaveform assembles one full frame: sync, then one bit0/bit1
// waveform per bit of code (MSB first, bits wide).
func frameWaveform(t protocolTiming, code uint64, bits int, terminator Waveform) Waveform {
	w := make(Waveform, 0, len(t.sync)+bits*2+len(terminator))
	w = append(w, t.sync...)
	for i := bits - 1; i >= 0; i-- {
		if (code>>uint(i))&1 == 1 {
			w = append(w, t.bit1...)
		} else {
			w = append(w, t.bit0...)
		}
	}
	w = append(w, terminator...)
	return w
}

// SendF28 transmits a 28-bit FLAMINGO-28 ciphertext code the
// protocol's repeat count, with a trailing quiet pause after the
// burst.
func SendF28(pin pulse.Pin, code uint32) error {
	return sendFrame(pin, f28Timing, uint64(code), 28, nil)
}

// SendF24 transmits a 24-bit FLAMINGO-24 code.
func SendF24(pin pulse.Pin, code uint32) error {
	return sendFrame(pin, f24Timing, uint64(code)&0xffffff, 24, nil)
}

// SendF32 transmits a 32-bit FLAMINGO-32 plaintext word (already
// field-packed by flamingo.EncodeF32Fields; this function drives the
// pulse-level waveform, not the Manchester capture format — the wire
// format documented here is the state machine's view of the bits,
// with the per-bit clock/low shape carrying the Manchester meaning).
func SendF32(pin pulse.Pin, word uint32) error {
	return sendFrame(pin, f32Timing, uint64(word), 32, f32Terminator)
}

func sendFrame(pin pulse.Pin, t protocolTiming, code uint64, bits int, terminator Waveform) error {
	if err := pin.Out(pulse.Low); err != nil {
		return fmt.Errorf("xmit: prime output low: %w", err)
	}
	w := frameWaveform(t, code, bits, terminator)
	for i := 0; i < t.repeats; i++ {
		if err := send(pin, w); err != nil {
			return err
		}
	}
	if err := pin.Out(pulse.Low); err != nil {
		return fmt.Errorf("xmit: settle output low: %w", err)
	}
	clock.Delay(t.quietPause)
	return nil
}

// Trace renders a Waveform as the ordered (level, duration) pulse
// pairs a test can assert against, without touching any GPIO pin —
// used by the transmitter pulse-trace test (spec section 8, scenario
// 6).
type Trace struct {
	Level    pulse.Level
	Duration time.Duration
}

// TraceF28 returns the pulse trace send(pin, waveform) would produce
// for a FLAMINGO-28 frame, for testing without hardware.
func TraceF28(code uint32) []Trace {
	return traceWaveform(frameWaveform(f28Timing, uint64(code), 28, nil))
}

func traceWaveform(w Waveform) []Trace {
	trace := make([]Trace, 0, len(w)*2)
	for _, seg := range w {
		if seg.high > 0 {
			trace = append(trace, Trace{Level: pulse.High, Duration: seg.high})
		}
		if seg.low > 0 {
			trace = append(trace, Trace{Level: pulse.Low, Duration: seg.low})
		}
	}
	return trace
}
