// Package decoder implements the stream decoder of spec section 4.D:
// quantizing raw pulse samples into symbols, learning the pulse
// alphabet, finding the sync symbol, and reconstructing bits —
// grounded function-for-function on rfsniffer-stream.c's scale,
// sniff, probe, filter, melt, tune, iron, hammer, find_sync, and
// decode_low/decode_high.
package decoder

import (
	"github.com/jechtern/rf433d/internal/protocol"
)

// scaleUnit is the stream-mode symbol scale, 100µs per spec section 3.
const scaleUnit = 100

// Scale divides each raw microsecond sample by scaleUnit with
// round-to-nearest, clamping to 255 (spec section 4.D step 1).
func Scale(lowUs, highUs []uint16) (low, high []uint8) {
	low = make([]uint8, len(lowUs))
	high = make([]uint8, len(highUs))
	for i, v := range lowUs {
		low[i] = scaleOne(v)
	}
	for i, v := range highUs {
		high[i] = scaleOne(v)
	}
	return low, high
}

func scaleOne(us uint16) uint8 {
	scaled := (uint32(us) + scaleUnit/2) / scaleUnit
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// Config carries the decoder's tunable thresholds, the stream-mode
// analogue of the state machine's sync table (spec section 6's
// decoder-related flags).
type Config struct {
	FineTuneTolerance uint8 // default 3, spec step 6
	MinSyncRepeats    int   // default 3, spec step 9
	MinSyncDistance   uint8 // default 8, spec step 9
}

// DefaultConfig returns the thresholds the original sniffer shipped
// with.
func DefaultConfig() Config {
	return Config{FineTuneTolerance: 3, MinSyncRepeats: 3, MinSyncDistance: 8}
}

// Decoder holds the per-pass working state for one decode attempt
// over a window of scaled symbols.
type Decoder struct {
	cfg Config

	L, H Alphabet

	lStream, hStream []uint8
	from, to         int // candidate span, both ends inclusive
}

// New builds a Decoder over the stream-mode config cfg.
func New(cfg Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Result is one decoded frame lifted out of a probe.
type Result struct {
	Protocol protocol.Protocol
	Raw      uint64
	Bits     int
}

// Run executes the full step 1-10 pipeline over one window of raw
// microsecond samples, returning every frame found via sync
// detection. Results are tagged protocol.Analyze; callers that know
// the expected bit count for a specific protocol should filter Bits
// accordingly, or use the realtime StateMachine path instead when the
// protocol's sync pulse is known ahead of time.
func (d *Decoder) Run(lowUs, highUs []uint16) []Result {
	lStream, hStream := Scale(lowUs, highUs)
	var results []Result

	pos := 0
	for pos+4 <= len(lStream) {
		from, to, ok := sniff(lStream, pos)
		if !ok {
			pos += 4
			continue
		}
		d.lStream, d.hStream = lStream, hStream
		d.from, d.to = from, to
		d.probe()
		d.filter()
		d.melt()
		d.tune()
		d.iron()
		d.hammer()
		if sym, dist, ok := d.findSync(); ok {
			results = append(results, d.decodeFrames(sym, dist)...)
		}
		pos = d.to + 1
	}
	return results
}
