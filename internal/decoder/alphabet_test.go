package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignEnforcesCardinalityInvariant(t *testing.T) {
	a := NewAlphabet()
	// Deliberately jitter-split symbols clustered close together,
	// which Align should collapse until the minimum pairwise distance
	// is no smaller than the remaining cardinality.
	for _, sym := range []uint8{30, 31, 29, 90, 91, 89, 92, 150} {
		a.Learn(sym)
	}
	a.Sort()
	a.Condense()
	a.Align()

	min := a.MinPairwiseDistance()
	assert.GreaterOrEqual(t, int(min), len(a.Entries))
}

func TestLearnRejectsSentinelSymbols(t *testing.T) {
	a := NewAlphabet()
	assert.False(t, a.Learn(0))
	assert.False(t, a.Learn(255))
	assert.Empty(t, a.Entries)
}

func TestMatchPrefersExact(t *testing.T) {
	a := NewAlphabet()
	a.Learn(30)
	a.Learn(90)
	m, ok := a.Match(30, 5)
	assert.True(t, ok)
	assert.EqualValues(t, 30, m)
}
