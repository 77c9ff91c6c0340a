package pulse

import (
	"time"

	"github.com/jechtern/rf433d/internal/protocol"
)

// State is a realtime-mode sampler state, mirroring the state machine
// in rfsniffer-realtime.c's realtime_sampler (there encoded as a
// signed int with sentinel values -1/-2/0/1/127/STATE_RESET).
type State uint8

const (
	StateIdle State = iota
	StateSampleLow
	StateSampleHigh
	StateAnalyzerSync
	StateAnalyzerSample
)

// Frame is one complete bit pattern lifted directly out of the
// realtime state machine, bypassing the stream decoder entirely.
type Frame struct {
	Protocol protocol.Protocol
	Raw      uint64
	Bits     int
}

// syncSpec is one row of spec §4.C's sync-pulse table.
type syncSpec struct {
	proto        protocol.Protocol
	minUs, maxUs int
	bits         int
	dividerUs    int
	sampleHigh   bool // true: bits are read from HIGH pulses; false: from LOW
}

// t1 is the FLAMINGO unit pulse width in microseconds.
const t1 = 330

var syncTable = []syncSpec{
	{protocol.Nexus, 3800, 4000, 36, 1500, false},
	{protocol.Flamingo28, 15*t1 - 80, 15*t1 + 80, 28, 2 * t1, true},
	{protocol.Flamingo24, 31*t1 - 100, 31*t1 + 100, 24, 2 * t1, true},
	{protocol.Flamingo32, 2600, 2800, 64, 695, false},
}

// SyncTable exposes the table read-only, for the disjointness test
// spec §8 requires ("For every protocol in §4.C, the table's sync
// window is disjoint from every other protocol's sync window").
func SyncTable() []struct {
	Protocol     protocol.Protocol
	MinUs, MaxUs int
} {
	out := make([]struct {
		Protocol     protocol.Protocol
		MinUs, MaxUs int
	}, len(syncTable))
	for i, s := range syncTable {
		out[i] = struct {
			Protocol     protocol.Protocol
			MinUs, MaxUs int
		}{s.proto, s.minUs, s.maxUs}
	}
	return out
}

// frameAbortUs is the "pulse > 22,222 µs aborts the current frame"
// noise rule from spec §4.C.
const frameAbortUs = 22222

// stateReset bounds how many off-pulses in a row the state machine
// will tolerate mid-frame before giving up, named for rfsniffer's
// STATE_RESET = 129 sentinel.
const stateReset = 129

// StateMachine reduces a realtime edge stream directly to Frames for
// protocols whose sync pulse is known ahead of time, skipping the
// stream decoder's alphabet-learning machinery entirely.
type StateMachine struct {
	state  State
	match  *syncSpec
	code   uint64
	got    int
	misses int

	analyzerEnabled          bool
	analyzerSyncMin, analyzerSyncMax time.Duration
	analyzerDivider                  time.Duration
	analyzerBits                     int

	deliver func(Frame)
}

// NewStateMachine builds a realtime-mode state machine that invokes
// deliver for every completed frame. analyzerSyncMin/Max/Divider/Bits
// come from the -x/-y/-z/-b CLI flags (spec §6); analyzerEnabled
// mirrors -a.
func NewStateMachine(analyzerEnabled bool, syncMin, syncMax, divider time.Duration, analyzerBits int, deliver func(Frame)) *StateMachine {
	return &StateMachine{
		analyzerEnabled:  analyzerEnabled,
		analyzerSyncMin:  syncMin,
		analyzerSyncMax:  syncMax,
		analyzerDivider:  divider,
		analyzerBits:     analyzerBits,
		deliver:          deliver,
	}
}

// Step feeds one completed pulse (the level it ran at, and its
// duration) into the state machine.
func (sm *StateMachine) Step(wasLow bool, us uint16) {
	if int(us) > frameAbortUs {
		sm.reset()
		return
	}
	switch sm.state {
	case StateIdle:
		sm.stepIdle(wasLow, us)
	case StateSampleLow:
		sm.stepSample(wasLow, us, false)
	case StateSampleHigh:
		sm.stepSample(wasLow, us, true)
	case StateAnalyzerSync:
		sm.stepAnalyzerSync(wasLow, us)
	case StateAnalyzerSample:
		sm.stepAnalyzerSample(wasLow, us)
	}
}

func (sm *StateMachine) reset() {
	sm.state = StateIdle
	sm.match = nil
	sm.code = 0
	sm.got = 0
	sm.misses = 0
}

func (sm *StateMachine) stepIdle(wasLow bool, us uint16) {
	if !wasLow {
		return
	}
	for i := range syncTable {
		sp := &syncTable[i]
		if int(us) >= sp.minUs && int(us) <= sp.maxUs {
			sm.match = sp
			sm.code = 0
			sm.got = 0
			sm.misses = 0
			if sp.sampleHigh {
				sm.state = StateSampleHigh
			} else {
				sm.state = StateSampleLow
			}
			return
		}
	}
	if sm.analyzerEnabled && time.Duration(us)*time.Microsecond >= sm.analyzerSyncMin &&
		time.Duration(us)*time.Microsecond <= sm.analyzerSyncMax {
		sm.code = 0
		sm.got = 0
		sm.state = StateAnalyzerSample
	}
}

// stepSample accumulates one bit per pulse on the polarity the
// matched protocol samples on (sampleHigh selects which), and ignores
// pulses of the other polarity as the inter-bit gap.
func (sm *StateMachine) stepSample(wasLow bool, us uint16, sampleHigh bool) {
	if wasLow == sampleHigh {
		// This pulse is on the gap polarity, not the data polarity.
		sm.misses++
		if sm.misses > stateReset {
			sm.reset()
		}
		return
	}
	bit := uint64(0)
	if int(us) > sm.match.dividerUs {
		bit = 1
	}
	sm.code = (sm.code << 1) | bit
	sm.got++
	sm.misses = 0
	if sm.got >= sm.match.bits {
		sm.deliver(Frame{Protocol: sm.match.proto, Raw: sm.code, Bits: sm.match.bits})
		sm.reset()
		return
	}
}

func (sm *StateMachine) stepAnalyzerSync(wasLow bool, us uint16) {
	sm.stepIdle(wasLow, us)
}

// stepAnalyzerSample accumulates one bit per LOW pulse, using the -z
// divider flag, and ignores HIGH pulses. It delivers the code on the
// next pulse inside the analyzer sync window, or as soon as it holds
// analyzerBits bits when the -b flag is above zero; either way it
// stays in this state for the next frame.
func (sm *StateMachine) stepAnalyzerSample(wasLow bool, us uint16) {
	if wasLow && time.Duration(us)*time.Microsecond >= sm.analyzerSyncMin &&
		time.Duration(us)*time.Microsecond <= sm.analyzerSyncMax {
		if sm.got > 0 {
			sm.deliver(Frame{Protocol: protocol.Analyze, Raw: sm.code, Bits: sm.got})
		}
		sm.code = 0
		sm.got = 0
		return
	}
	if wasLow {
		bit := uint64(0)
		if time.Duration(us)*time.Microsecond > sm.analyzerDivider {
			bit = 1
		}
		sm.code = (sm.code << 1) | bit
		sm.got++
		if sm.analyzerBits > 0 && sm.got >= sm.analyzerBits {
			sm.deliver(Frame{Protocol: protocol.Analyze, Raw: sm.code, Bits: sm.got})
			sm.code = 0
			sm.got = 0
		}
	}
}
