package pulse

import (
	"context"
	"fmt"
	"time"

	"github.com/jechtern/rf433d/internal/clock"
)

// edgeWaitTimeout bounds each WaitForEdge call so the sampler can
// observe ctx cancellation promptly without ever sleeping
// voluntarily between real edges.
const edgeWaitTimeout = 250 * time.Millisecond

// Sampler runs the realtime-elevated edge loop described in spec
// §4.C: on every edge it measures the pulse that just ended, clamps
// it, and writes it into the L or H ring depending on which polarity
// just ended. When a StateMachine is attached it also feeds the
// pulse into that reduction path.
type Sampler struct {
	pin            Pin
	ring           *Ring
	noiseThreshold int64 // microseconds
	sampleOnLow    bool
	sampleOnHigh   bool
	sm             *StateMachine
}

// NewSampler builds a sampler over pin, writing into ring and
// optionally reducing frames through sm (nil disables realtime
// decoding; the stream decoder then owns interpretation of ring).
func NewSampler(pin Pin, ring *Ring, noiseThresholdUs int, sampleOnLow, sampleOnHigh bool, sm *StateMachine) *Sampler {
	return &Sampler{
		pin:            pin,
		ring:           ring,
		noiseThreshold: int64(noiseThresholdUs),
		sampleOnLow:    sampleOnLow,
		sampleOnHigh:   sampleOnHigh,
		sm:             sm,
	}
}

// Run arms the pin for both-edge detection and blocks, translating
// edges into ring writes, until ctx is cancelled. It never sleeps and
// never allocates once inside the loop.
func (s *Sampler) Run(ctx context.Context) error {
	if err := s.pin.In(PullDown, BothEdges); err != nil {
		return fmt.Errorf("sampler: arm input: %w", err)
	}

	last := clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !s.pin.WaitForEdge(edgeWaitTimeout) {
			continue
		}

		now := clock.Now()
		elapsed := clock.Since(last)
		last = now

		// The level read after the edge is the level the pulse that
		// just ended was NOT: the ended pulse had the inverse level.
		levelAfter := s.pin.Read()
		endedWasLow := levelAfter == High

		us := clampUs(elapsed.Microseconds())
		if int64(us) < s.noiseThreshold {
			// TRANSIENT_NOISE: dropped with no counter side-effects.
			continue
		}

		if endedWasLow {
			s.ring.WriteLow(us)
		} else {
			s.ring.WriteHigh(us)
		}

		if (endedWasLow && s.sampleOnLow) || (!endedWasLow && s.sampleOnHigh) {
			s.ring.Advance()
		}

		if s.sm != nil {
			s.sm.Step(endedWasLow, us)
		}
	}
}
