package xmit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jechtern/rf433d/internal/flamingo"
	"github.com/jechtern/rf433d/internal/pulse"
)

// TestTransmitterPulseTrace is spec section 8 scenario 6: the trace
// for remote=1, channel 'A', command=1, rolling=0 starts with HIGH
// 330us then LOW 4950us, followed by 28 bit pairs of either
// (330 HIGH, 990 LOW) or (990 HIGH, 330 LOW).
func TestTransmitterPulseTrace(t *testing.T) {
	f := flamingo.Frame28{Xmitter: 1, Channel: 1, Command: 1, Rolling: 0, Payload: 0}
	code := flamingo.EncodeAndEncryptF28(f)

	trace := TraceF28(code)
	require.Len(t, trace, 2+28*2)

	assert.Equal(t, pulse.High, trace[0].Level)
	assert.InDelta(t, 330*time.Microsecond, trace[0].Duration, float64(10*time.Microsecond))
	assert.Equal(t, pulse.Low, trace[1].Level)
	assert.InDelta(t, 4950*time.Microsecond, trace[1].Duration, float64(10*time.Microsecond))

	for i := 0; i < 28; i++ {
		high := trace[2+i*2]
		low := trace[3+i*2]
		bitZero := high.Duration == 330*time.Microsecond && low.Duration == 990*time.Microsecond
		bitOne := high.Duration == 990*time.Microsecond && low.Duration == 330*time.Microsecond
		assert.True(t, bitZero || bitOne, "bit %d: unexpected pulse pair %v/%v", i, high, low)
	}
}
