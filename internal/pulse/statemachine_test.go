package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSyncTableDisjoint is spec section 8's sync table invariant: for
// every protocol, its sync window is disjoint from every other
// protocol's.
func TestSyncTableDisjoint(t *testing.T) {
	table := SyncTable()
	for i := range table {
		for j := range table {
			if i == j {
				continue
			}
			overlap := table[i].MinUs <= table[j].MaxUs && table[j].MinUs <= table[i].MaxUs
			assert.False(t, overlap, "protocol %v [%d,%d] overlaps %v [%d,%d]",
				table[i].Protocol, table[i].MinUs, table[i].MaxUs,
				table[j].Protocol, table[j].MinUs, table[j].MaxUs)
		}
	}
}

func TestStateMachineDecodesKnownSyncAndBits(t *testing.T) {
	var got []Frame
	sm := NewStateMachine(false, 0, 0, 0, 0, func(f Frame) {
		got = append(got, f)
	})

	// NEXUS sync pulse (LOW, 3900us), then 36 LOW/HIGH bit pairs all
	// above the 1500us divider (all-ones code), ignoring HIGH gaps.
	sm.Step(true, 3900)
	for i := 0; i < 36; i++ {
		sm.Step(false, 100) // HIGH gap pulse, ignored for NEXUS (sampleHigh=false)
		sm.Step(true, 2000) // LOW data pulse, above 1500 divider -> bit 1
	}

	if assert.Len(t, got, 1) {
		assert.Equal(t, 36, got[0].Bits)
		assert.Equal(t, uint64(1<<36-1), got[0].Raw)
	}
}
