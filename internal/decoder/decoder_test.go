package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalyzerScenario is spec section 8 scenario 5: a synthesized
// stream SYNC(9000us LOW) + [300us LOW, 900us HIGH]*20 yields a
// 20-bit code of all zeros and a learned alphabet L={30}, H={90}.
func TestAnalyzerScenario(t *testing.T) {
	var lowUs, highUs []uint16
	appendFrame := func() {
		for i := 0; i < 20; i++ {
			lowUs = append(lowUs, 300)
			highUs = append(highUs, 900)
		}
	}
	appendSync := func() {
		lowUs = append(lowUs, 9000)
		highUs = append(highUs, 0)
	}
	// find_sync needs at least a few equally-spaced sync occurrences,
	// so the frame is repeated: sync, frame, sync, frame, sync.
	appendSync()
	appendFrame()
	appendSync()
	appendFrame()
	appendSync()

	d := New(DefaultConfig())
	results := d.Run(lowUs, highUs)

	require.NotEmpty(t, results)
	found := false
	for _, r := range results {
		if r.Bits == 20 && r.Raw == 0 {
			found = true
		}
	}
	assert.True(t, found, "expected at least one all-zero 20-bit frame among %v", results)

	// The scenario's L=30/H=90 figures are realtime-mode's 10µs scale;
	// this path runs the stream decoder's 100µs scale (spec section
	// 3), so the equivalent canonical symbols are 3 and 9.
	assert.Contains(t, symbolValues(d.L), uint8(3))
	assert.Contains(t, symbolValues(d.H), uint8(9))
}

func symbolValues(a Alphabet) []uint8 {
	var out []uint8
	for _, e := range a.Entries {
		out = append(out, e.Symbol)
	}
	return out
}

func TestScaleRoundsToNearest100us(t *testing.T) {
	low, high := Scale([]uint16{0, 49, 50, 149, 150, 65535}, nil)
	assert.Equal(t, []uint8{0, 0, 1, 1, 2, 255}, low)
	assert.Empty(t, high)
}
