package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingWriteAndSlice(t *testing.T) {
	r := NewRing(8)
	for i := uint16(0); i < 5; i++ {
		r.WriteLow(i * 10)
		r.WriteHigh(i * 20)
		r.Advance()
	}
	low, high := r.Slice(0, r.Head())
	assert.Equal(t, []uint16{0, 10, 20, 30, 40}, low)
	assert.Equal(t, []uint16{0, 20, 40, 60, 80}, high)
}

func TestRingWrapsAtCapacity(t *testing.T) {
	r := NewRing(4)
	for i := uint16(0); i < 10; i++ {
		r.WriteLow(i)
		r.Advance()
	}
	assert.EqualValues(t, 10, r.Head())
	l, _ := r.At(9)
	assert.Equal(t, uint16(9), l)
}

func TestClampUs(t *testing.T) {
	assert.Equal(t, uint16(0), clampUs(-5))
	assert.Equal(t, uint16(65535), clampUs(100000))
	assert.Equal(t, uint16(1234), clampUs(1234))
}
